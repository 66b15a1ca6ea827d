package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRepeating(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		want   string
		wantOK bool
	}{
		{
			name: "no repeats",
			doc:  `<r><a/><b/></r>`,
		},
		{
			name: "empty root",
			doc:  `<r/>`,
		},
		{
			name:   "highest count wins",
			doc:    `<r><a/><b/><b/><a/><b/></r>`,
			want:   "b",
			wantOK: true,
		},
		{
			name:   "tie goes to the tag seen first",
			doc:    `<r><x/><y/><y/><x/></r>`,
			want:   "x",
			wantOK: true,
		},
		{
			name:   "second level when the root has no repeats",
			doc:    `<r><header/><items><item/><item/></items></r>`,
			want:   "item",
			wantOK: true,
		},
		{
			name:   "first child with a repeat decides",
			doc:    `<r><g1><p/><p/></g1><g2><q/><q/><q/></g2></r>`,
			want:   "p",
			wantOK: true,
		},
		{
			name:   "root level beats second level",
			doc:    `<r><g><q/><q/><q/></g><a/><a/></r>`,
			want:   "a",
			wantOK: true,
		},
		{
			name: "search stops below the second level",
			doc:  `<r><a><b><c/><c/></b></a></r>`,
		},
		{
			name:   "prefixed tags are compared verbatim",
			doc:    `<r xmlns:n="urn:x"><n:rec/><rec/><n:rec/></r>`,
			want:   "n:rec",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectRepeating(mustRoot(t, tt.doc))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
