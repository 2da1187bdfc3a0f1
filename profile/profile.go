package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"ukulima/db"
	"ukulima/models"
	"ukulima/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUserProfile handles GET /api/users/profile/:id. Public; password and
// email never leave through PublicUser.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.PublicUser
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("id")}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile for the authenticated user.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Name    string             `json:"name"`
		Phone   string             `json:"phone"`
		Avatar  string             `json:"avatar"`
		Profile models.UserProfile `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.Avatar != "" {
		set["avatar"] = input.Avatar
	}
	set["profile"] = input.Profile

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var updated models.PublicUser
	err := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("profile update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// GetFarmers handles GET /api/users/farmers — farmer directory sorted by
// rating, optionally narrowed by county.
func GetFarmers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	query := bson.M{"role": models.RoleFarmer}
	if county := r.URL.Query().Get("county"); county != "" && county != "all" {
		query["profile.location.county"] = primitive.Regex{Pattern: regexp.QuoteMeta(county), Options: "i"}
	}

	page, limit := utils.ParsePage(r, 12, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	farmers, err := utils.FindAndDecode[models.PublicUser](ctx, db.UserCollection, query, opts)
	if err != nil {
		log.Printf("farmer list error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := db.UserCollection.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("farmer count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"farmers":     farmers,
		"totalPages":  utils.TotalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}
