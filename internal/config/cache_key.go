package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// InstituteByNameKey returns the cache key for an institute name → id mapping
func (r *CacheKeyStruct) InstituteByNameKey(name string) string {
	return fmt.Sprintf("institute:name:%s", name)
}

// SessionKey returns the cache key holding the active session JTI of an account
func (r *CacheKeyStruct) SessionKey(role, email string) string {
	return fmt.Sprintf("session:%s:%s", role, email)
}

// SignInAttemptsKey returns the cache key counting failed sign-ins of an account
func (r *CacheKeyStruct) SignInAttemptsKey(role, email string) string {
	return fmt.Sprintf("signin:attempts:%s:%s", role, email)
}

var CacheKey = NewCacheKeyStruct()
