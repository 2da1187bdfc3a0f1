package messages

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ukulima/db"
	"ukulima/models"
	"ukulima/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Notifier pushes a persisted message towards its receiver, best effort.
// Delivery failure never fails the request; the stored message is the
// durable record.
type Notifier interface {
	NotifyMessage(msg models.Message)
}

var notifier Notifier

// SetNotifier installs the realtime side channel. nil disables it.
func SetNotifier(n Notifier) {
	notifier = n
}

var validMessageTypes = map[string]bool{
	models.MsgText:    true,
	models.MsgImage:   true,
	models.MsgOffer:   true,
	models.MsgInquiry: true,
}

// SendMessage handles POST /api/messages/message.
func SendMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Receiver    string `json:"receiver"`
		Content     string `json:"content"`
		Order       string `json:"order"`
		Product     string `json:"product"`
		MessageType string `json:"messageType"`
		ImageURL    string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Receiver == "" || input.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Receiver and content are required")
		return
	}
	if input.Receiver == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot message yourself")
		return
	}
	if input.MessageType == "" {
		input.MessageType = models.MsgText
	}
	if !validMessageTypes[input.MessageType] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var receiver models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": input.Receiver}).Decode(&receiver); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Receiver not found")
		return
	}

	msg := models.Message{
		MessageID:   "m" + utils.GetUUID(),
		Sender:      userID,
		Receiver:    input.Receiver,
		Order:       input.Order,
		Product:     input.Product,
		Content:     input.Content,
		IsRead:      false,
		MessageType: input.MessageType,
		ImageURL:    input.ImageURL,
		CreatedAt:   time.Now(),
	}

	if _, err := db.MessageCollection.InsertOne(ctx, msg); err != nil {
		log.Printf("message insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	// fire-and-forget delivery after the durable write
	if notifier != nil {
		notifier.NotifyMessage(msg)
	}

	utils.RespondWithJSON(w, http.StatusCreated, msg)
}

// markReadFilter selects the unread messages the counterparty sent to
// userID. Only that direction flips; the caller's own sent messages keep
// their read state.
func markReadFilter(userID, otherID string) bson.M {
	return bson.M{"sender": otherID, "receiver": userID, "isRead": false}
}

// GetMessages handles GET /api/messages/thread/:userId — the full thread with one
// user, oldest first. Fetching marks everything addressed to the caller in
// this thread as read.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	otherID := ps.ByName("userId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	thread, err := utils.FindAndDecode[models.Message](ctx, db.MessageCollection, bson.M{
		"$or": []bson.M{
			{"sender": userID, "receiver": otherID},
			{"sender": otherID, "receiver": userID},
		},
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		log.Printf("thread fetch error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = db.MessageCollection.UpdateMany(ctx,
		markReadFilter(userID, otherID),
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		log.Printf("mark-read error: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, thread)
}
