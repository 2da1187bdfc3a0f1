package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func stage(t *testing.T, d bson.D, key string) interface{} {
	t.Helper()
	assert.Len(t, d, 1)
	assert.Equal(t, key, d[0].Key)
	return d[0].Value
}

func TestConversationPipeline(t *testing.T) {
	p := ConversationPipeline("uA")
	assert.Len(t, p, 7)

	match := stage(t, p[0], "$match").(bson.M)
	assert.Equal(t, []bson.M{{"sender": "uA"}, {"receiver": "uA"}}, match["$or"])

	sort := stage(t, p[1], "$sort").(bson.D)
	assert.Equal(t, "createdAt", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)

	group := stage(t, p[2], "$group").(bson.M)
	// grouping key is the counterparty, whichever side the user is on
	key := group["_id"].(bson.M)["$cond"].(bson.A)
	assert.Equal(t, bson.M{"$eq": bson.A{"$sender", "uA"}}, key[0])
	assert.Equal(t, "$receiver", key[1])
	assert.Equal(t, "$sender", key[2])
	// newest message per group wins because of the preceding sort
	assert.Equal(t, bson.M{"$first": "$$ROOT"}, group["lastMessage"])

	unread := group["unreadCount"].(bson.M)["$sum"].(bson.M)["$cond"].(bson.A)
	and := unread[0].(bson.M)["$and"].(bson.A)
	assert.Equal(t, bson.M{"$eq": bson.A{"$receiver", "uA"}}, and[0])
	assert.Equal(t, bson.M{"$eq": bson.A{"$isRead", false}}, and[1])

	lookup := stage(t, p[3], "$lookup").(bson.M)
	assert.Equal(t, "users", lookup["from"])
	assert.Equal(t, "userid", lookup["foreignField"])

	project := stage(t, p[5], "$project").(bson.M)
	assert.Equal(t, 0, project["user.password"])
	assert.Equal(t, 0, project["user.email"])

	finalSort := stage(t, p[6], "$sort").(bson.D)
	assert.Equal(t, "lastMessage.createdAt", finalSort[0].Key)
	assert.Equal(t, -1, finalSort[0].Value)
}
