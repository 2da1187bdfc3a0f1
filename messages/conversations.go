package messages

import (
	"context"
	"log"
	"net/http"
	"time"

	"ukulima/db"
	"ukulima/models"
	"ukulima/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConversationPipeline groups the flat message log into one row per
// counterparty: the newest message wins lastMessage, unreadCount counts
// messages addressed to userID that are still unread, and rows come back
// most-recent-conversation first. Counterparty users are joined in with
// password and email projected away.
func ConversationPipeline(userID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": []bson.M{{"sender": userID}, {"receiver": userID}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$sender", userID}},
				"$receiver",
				"$sender",
			}},
			"lastMessage": bson.M{"$first": "$$ROOT"},
			"unreadCount": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$receiver", userID}},
					bson.M{"$eq": bson.A{"$isRead", false}},
				}},
				1,
				0,
			}}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "userid",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"user.password":     0,
			"user.email":        0,
			"user.refreshToken": 0,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessage.createdAt", Value: -1}}}},
	}
}

// GetConversations handles GET /api/messages/conversations.
func GetConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.MessageCollection.Aggregate(ctx, ConversationPipeline(userID))
	if err != nil {
		log.Printf("conversations aggregate error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	conversations := []models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		log.Printf("conversations decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, conversations)
}
