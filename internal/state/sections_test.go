package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionStoreDetectsChanges(t *testing.T) {
	s := NewSectionStore()
	first := []json.RawMessage{json.RawMessage(`{"circleID":1}`)}

	assert.True(t, s.SetItems("Joined", first))
	assert.False(t, s.SetItems("Joined", []json.RawMessage{json.RawMessage(`{"circleID":1}`)}))
	assert.True(t, s.SetItems("Joined", nil))
	assert.True(t, s.SetItems("Owned", nil), "first update of a section always counts")
	assert.Equal(t, []string{"Joined", "Owned"}, s.Sections())
}

func TestSectionStoreReturnsCopies(t *testing.T) {
	s := NewSectionStore()
	items := []json.RawMessage{json.RawMessage(`{"circleID":1}`)}
	s.SetItems("Joined", items)
	items[0][2] = 'x'

	got := s.Items("Joined")
	assert.JSONEq(t, `{"circleID":1}`, string(got[0]))
	got[0] = json.RawMessage(`{}`)
	assert.JSONEq(t, `{"circleID":1}`, string(s.Items("Joined")[0]))
}
