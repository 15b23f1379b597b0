package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addAt(line int) UpdateAdd {
	return UpdateAdd{
		Name:   NewName("example", "com"),
		TTL:    60,
		Class:  RRClassIN,
		Record: AData{Address: IPv4Address{192, 0, 2, byte(line)}},
		Line:   line,
	}
}

func TestDocument_Batches(t *testing.T) {
	doc := Document{Directives: []Directive{
		addAt(1),
		UpdateDelete{Name: NewName("example", "com"), Type: RRTypeMX, Line: 2},
		Send{Line: 3},
		Send{Line: 4},
		addAt(5),
	}}

	batches := doc.Batches()
	require.Len(t, batches, 3)

	assert.True(t, batches[0].Sent)
	assert.Equal(t, 3, batches[0].SendLine)
	assert.Len(t, batches[0].Updates, 2)

	assert.True(t, batches[1].Sent)
	assert.Equal(t, 4, batches[1].SendLine)
	assert.Empty(t, batches[1].Updates)

	assert.False(t, batches[2].Sent)
	assert.Equal(t, 0, batches[2].SendLine)
	require.Len(t, batches[2].Updates, 1)
	assert.Equal(t, 5, batches[2].Updates[0].SourceLine())
}

func TestDocument_BatchesWithoutTail(t *testing.T) {
	doc := Document{Directives: []Directive{addAt(1), Send{Line: 2}}}
	batches := doc.Batches()
	require.Len(t, batches, 1)
	assert.True(t, batches[0].Sent)
	assert.True(t, doc.HasSend())
	assert.Equal(t, 2, doc.Len())
}

func TestDocument_Empty(t *testing.T) {
	var doc Document
	assert.Empty(t, doc.Batches())
	assert.False(t, doc.HasSend())
}

func TestUpdateAdd_Accessors(t *testing.T) {
	add := addAt(1)
	assert.Equal(t, uint16(0), add.PriorityOrZero())
	assert.Equal(t, RRTypeA, add.Type())

	p := uint16(20)
	add.Priority = &p
	assert.Equal(t, uint16(20), add.PriorityOrZero())

	assert.Equal(t, RRType(0), UpdateAdd{}.Type())
}
