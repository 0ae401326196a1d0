package redis

import (
	"fmt"

	"github.com/showquiz/tvtrivia/internal/model"
)

// Key prefix for all trivia-related data
const keyPrefix = "tvtrivia"

// Key generation functions for each document type

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// rosterKey returns the Redis key for a session's Roster
func rosterKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:roster:%s", keyPrefix, sessionID)
}

// selectionsKey returns the Redis key for a session's show selections
func selectionsKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:selections:%s", keyPrefix, sessionID)
}

// usedQuestionsKey returns the Redis key for a session's per-decade used set
func usedQuestionsKey(sessionID model.SessionID, decade string) string {
	return fmt.Sprintf("%s:used:%s:%s", keyPrefix, sessionID, decade)
}

// bankKey returns the Redis key for a QuestionBank document
func bankKey(bankID string) string {
	return fmt.Sprintf("%s:bank:%s", keyPrefix, bankID)
}

// latestBankIndexKey returns the Redis key for the decade -> bank_id index
func latestBankIndexKey(decade string) string {
	return fmt.Sprintf("%s:idx:latest_bank:%s", keyPrefix, decade)
}

// userKey returns the Redis key for a User
func userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, userID)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// themeKey returns the Redis key for a session's theme
func themeKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:theme:%s", keyPrefix, sessionID)
}
