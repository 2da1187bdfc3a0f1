package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMarkReadFilter(t *testing.T) {
	filter := markReadFilter("uA", "uB")

	// only messages uB sent to uA that are still unread
	assert.Equal(t, bson.M{"sender": "uB", "receiver": "uA", "isRead": false}, filter)
}

func TestMarkReadFilterLeavesOwnMessagesAlone(t *testing.T) {
	filter := markReadFilter("uA", "uB")

	// a message uA sent to uB must not match the mark-read update
	sent := bson.M{"sender": "uA", "receiver": "uB", "isRead": false}
	assert.NotEqual(t, sent["sender"], filter["sender"])
	assert.NotEqual(t, sent["receiver"], filter["receiver"])
}
