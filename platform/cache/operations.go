package cache

import "github.com/gomodule/redigo/redis"

// Thin command wrappers; callers translate redis.ErrNil themselves.

func Get(conn redis.Conn, key string) (string, error) {
	return redis.String(conn.Do("GET", key))
}

func Set(conn redis.Conn, key, value string) error {
	_, err := conn.Do("SET", key, value)
	return err
}

func Del(conn redis.Conn, key string) error {
	_, err := conn.Do("DEL", key)
	return err
}

func Publish(conn redis.Conn, channel, message string) error {
	_, err := conn.Do("PUBLISH", channel, message)
	return err
}
