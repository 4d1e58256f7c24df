package patent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordSetKeepsInsertionOrder(t *testing.T) {
	r := NewRecord()
	r.Set("b", Text("1"))
	r.Set("a", Text("2"))
	r.Set("b", Text("3"))

	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, `{"b":"3","a":"2"}`, marshal(t, r))
}

func TestRecordAppend(t *testing.T) {
	r := NewRecord()
	assert.True(t, r.Append("k", Text("a")))
	assert.True(t, r.Append("k", Text("b")))
	assert.Equal(t, `{"k":["a","b"]}`, marshal(t, r))
}

func TestRecordAppendOverScalarRestartsList(t *testing.T) {
	r := NewRecord()
	r.Set("k", Text("scalar"))
	assert.False(t, r.Append("k", Text("a")))
	assert.Equal(t, `{"k":["a"]}`, marshal(t, r))
}

func TestValueMarshaling(t *testing.T) {
	inner := NewRecord()
	inner.Set("n", Null{})

	r := NewRecord()
	r.Set("text", Text("x"))
	r.Set("list", List{Text("a"), Null{}, inner})

	assert.Equal(t, `{"text":"x","list":["a",null,{"n":null}]}`, marshal(t, r))
}
