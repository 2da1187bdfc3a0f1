package routes

import (
	"ukulima/auth"
	"ukulima/messages"
	"ukulima/middleware"
	"ukulima/orders"
	"ukulima/products"
	"ukulima/profile"
	"ukulima/ratelim"
	"ukulima/realtime"
	"ukulima/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/product/:id", products.GetProduct)
	router.POST("/api/products/product", rl.Limit(middleware.Authenticate(products.CreateProduct)))
	router.PUT("/api/products/product/:id", middleware.Authenticate(products.UpdateProduct))
	router.DELETE("/api/products/product/:id", middleware.Authenticate(products.DeleteProduct))
	router.GET("/api/products/farmer/:farmerId", products.GetFarmerProducts)
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders/order", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/myorders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/order/:id", middleware.Authenticate(orders.GetOrder))
	router.PUT("/api/orders/order/:id/status", middleware.Authenticate(orders.UpdateOrderStatus))
	router.PUT("/api/orders/order/:id/payment", middleware.Authenticate(orders.UpdatePaymentStatus))
	router.GET("/api/orders/order/:id/receipt", middleware.Authenticate(orders.DownloadReceipt))
}

func AddMessageRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/messages/conversations", middleware.Authenticate(messages.GetConversations))
	router.GET("/api/messages/thread/:userId", middleware.Authenticate(messages.GetMessages))
	router.POST("/api/messages/message", rl.Limit(middleware.Authenticate(messages.SendMessage)))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users/farmers", profile.GetFarmers)
	router.GET("/api/users/profile/:id", profile.GetUserProfile)
	router.PUT("/api/users/profile", middleware.Authenticate(profile.UpdateProfile))
}

func AddReviewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reviews", rl.Limit(middleware.Authenticate(reviews.AddReview)))
	router.GET("/api/reviews/:entityType/:entityId", reviews.GetReviews)
}

func AddRealtimeRoutes(router *httprouter.Router, hub *realtime.Hub) {
	router.GET("/ws/chat", realtime.WebSocketHandler(hub))
}
