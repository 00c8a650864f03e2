package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddKeepsFirstSeenOrder(t *testing.T) {
	s := NewSet("b", "a", "b", "c")
	assert.Equal(t, []string{"b", "a", "c"}, s.Tokens())
	assert.Equal(t, 3, s.Len())
}

func TestSet_ZeroValueUsable(t *testing.T) {
	var s Set
	assert.False(t, s.Has("x"))
	s.Toggle("x")
	assert.True(t, s.Has("x"))
	s.Toggle("x")
	assert.False(t, s.Has("x"))
	assert.Equal(t, 0, s.Len())
}

func TestSet_RemoveMiddle(t *testing.T) {
	s := NewSet("a", "b", "c")
	s.Remove("b")
	assert.Equal(t, []string{"a", "c"}, s.Tokens())
	s.Remove("missing")
	assert.Equal(t, 2, s.Len())
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := NewSet("a", "b")
	c := s.Clone()
	c.Remove("a")
	c.Add("z")
	assert.Equal(t, []string{"a", "b"}, s.Tokens())
	assert.Equal(t, []string{"b", "z"}, c.Tokens())
}

func TestSet_EqualIgnoresOrder(t *testing.T) {
	assert.True(t, NewSet("a", "b").Equal(NewSet("b", "a")))
	assert.False(t, NewSet("a", "b").Equal(NewSet("a")))
	assert.False(t, NewSet("a", "b").Equal(NewSet("a", "c")))
	assert.True(t, Set{}.Equal(NewSet()))
}

func TestSerialize(t *testing.T) {
	assert.Equal(t, "", Serialize(Set{}, ","))
	assert.Equal(t, "A", Serialize(NewSet("A"), ","))
	assert.Equal(t, "B|A", Serialize(NewSet("B", "A"), "|"))
	assert.Equal(t, "A,B", Serialize(NewSet("A", "B"), ""), "empty separator falls back to comma")
}

func TestDeserialize(t *testing.T) {
	assert.Equal(t, 0, Deserialize("", ",").Len())

	s := Deserialize(" A , B,A ", ",")
	assert.Equal(t, []string{"A", "B"}, s.Tokens())

	s = Deserialize("x;y", ";")
	assert.Equal(t, []string{"x", "y"}, s.Tokens())
}

func TestDeserialize_Malformed(t *testing.T) {
	s := Deserialize(",,,", ",")
	require.Equal(t, 1, s.Len())
	assert.True(t, s.Has(""))

	s = Deserialize("   ", ",")
	assert.Equal(t, []string{""}, s.Tokens())
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		sep  string
		set  Set
	}{
		{"empty", ",", Set{}},
		{"single", ",", NewSet("A")},
		{"many", ",", NewSet("Human Resources", "Product Management", "Product Development")},
		{"pipe", "|", NewSet("a,b", "c")},
		{"multi-char", "::", NewSet("x", "y", "z")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Deserialize(Serialize(tc.set, tc.sep), tc.sep)
			assert.True(t, tc.set.Equal(got), "want %v, got %v", tc.set.Tokens(), got.Tokens())
		})
	}
}

func TestTokens_KeepsDuplicates(t *testing.T) {
	assert.Nil(t, Tokens("", ","))
	assert.Equal(t, []string{"a", "a", "b"}, Tokens("a, a ,b", ","))
}
