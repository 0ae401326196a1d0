package postgres

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showquiz/tvtrivia/internal/model"
)

func TestUnmarshalDocValid(t *testing.T) {
	data, err := json.Marshal(&model.UsedQuestions{
		SessionID: "SESSION1",
		Decade:    "1990s",
		IDs:       []string{"q-1"},
	})
	require.NoError(t, err)

	var used model.UsedQuestions
	err = unmarshalDoc(data, &used, model.ErrUsedQuestionsNotFound)
	require.NoError(t, err)
	assert.Equal(t, []string{"q-1"}, used.IDs)
}

func TestUnmarshalDocCorruptReadsAsMissing(t *testing.T) {
	var used model.UsedQuestions
	err := unmarshalDoc([]byte("{not json"), &used, model.ErrUsedQuestionsNotFound)
	assert.ErrorIs(t, err, model.ErrUsedQuestionsNotFound)

	var session model.GameSession
	err = unmarshalDoc([]byte("]["), &session, model.ErrSessionNotFound)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
