package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_MarshalJSON_KeepsKeyOrder(t *testing.T) {
	bio := NewRow().
		Set("name", "Lamar Jackson").
		Set("birth_date", "1997-01-07").
		Set("college", nil)
	games := []*Row{
		NewRow().Set("week_num", 1).Set("opp", "KAN").Set("pts", 20),
		NewRow().Set("week_num", 2).Set("opp", "LVR").Set("pts", 23),
	}
	doc := NewRow().
		Set("year", 2024).
		Set("bio", bio).
		Set("games", games).
		Set("aliases", []string{"L-Jax"}).
		Set("draft", (*Row)(nil))

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"year":2024,"bio":{"name":"Lamar Jackson","birth_date":"1997-01-07","college":null},`+
			`"games":[{"week_num":1,"opp":"KAN","pts":20},{"week_num":2,"opp":"LVR","pts":23}],`+
			`"aliases":["L-Jax"],"draft":null}`,
		string(b))
}

func TestRow_MarshalJSON_EmptyAndNil(t *testing.T) {
	b, err := json.Marshal(NewRow())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))

	var r *Row
	b, err = json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestRow_MarshalJSON_NotAlphabetical(t *testing.T) {
	r := NewRow().Set("z", 1).Set("a", 2).Set("m", 3)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, string(b))
}

func TestRow_SetKeepsPositionAndDeleteKeepsOrder(t *testing.T) {
	r := NewRow().Set("player", "A").Set("team", "BAL").Set("g", 17)
	r.Set("player", "B")
	assert.Equal(t, []string{"player", "team", "g"}, r.Keys())
	assert.Equal(t, "B", r.String("player"))

	r.Delete("team")
	r.Delete("missing")
	assert.Equal(t, []string{"player", "g"}, r.Keys())
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Has("team"))

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"player":"B","g":17}`, string(b))
}

func TestRow_TypedAccessors(t *testing.T) {
	sub := NewRow().Set("k", "v")
	r := NewRow().Set("n", 3).Set("s", "x").Set("sub", sub).Set("rows", []*Row{sub})

	n, ok := r.Int("n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = r.Int("s")
	assert.False(t, ok)
	assert.Equal(t, "", r.String("n"))
	assert.Same(t, sub, r.Sub("sub"))
	assert.Nil(t, r.Sub("s"))
	assert.Len(t, r.Rows("rows"), 1)

	var nilRow *Row
	assert.Nil(t, nilRow.Value("x"))
	assert.Equal(t, 0, nilRow.Len())
	assert.Nil(t, nilRow.Keys())
}

func TestParseError_Wrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("fetch: %w", NewParseError(ErrCodeNavigation, "navigation failed", cause))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeNavigation, pe.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "NAVIGATION_FAILED: navigation failed: dial tcp: refused", pe.Error())
	assert.Equal(t, &ErrorDetail{Code: ErrCodeNavigation, Message: "navigation failed"}, pe.ToDetail())

	shape := PageShapeError("schedule", "table#games")
	assert.Equal(t, ErrCodePageShape, shape.Code)
	assert.Equal(t, "PAGE_SHAPE_MISMATCH: schedule page has no table#games", shape.Error())
}
