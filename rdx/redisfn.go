package rdx

import (
	"log"
	"os"

	"ukulima/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis not reachable at %s: %v", addr, err)
	}
}

func RdxHset(group, key, value string) error {
	return Conn.HSet(globals.Ctx, group, key, value).Err()
}

func RdxHdel(group, key string) error {
	return Conn.HDel(globals.Ctx, group, key).Err()
}
