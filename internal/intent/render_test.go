package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JamesPrial/tasklist/internal/intent"
	"github.com/JamesPrial/tasklist/internal/todo"
)

func TestSummary(t *testing.T) {
	assert.Equal(t, "No tasks yet.", intent.Summary(todo.Progress{}))
	assert.Equal(t, "0 of 2 completed", intent.Summary(todo.Progress{Total: 2}))
	assert.Equal(t, "2 of 3 completed", intent.Summary(todo.Progress{Done: 2, Total: 3}))
}

func TestFormatList(t *testing.T) {
	tests := []struct {
		name  string
		items []todo.Item
		want  string
	}{
		{
			name:  "empty",
			items: nil,
			want:  "No tasks yet.\n",
		},
		{
			name: "marks and summary",
			items: []todo.Item{
				{ID: "1", Text: "Buy milk"},
				{ID: "2", Text: "Walk dog", Completed: true},
			},
			want: "[ ] 1  Buy milk\n" +
				"[x] 2  Walk dog\n" +
				"\n" +
				"1 of 2 completed\n",
		},
		{
			name: "notes indented line by line",
			items: []todo.Item{
				{ID: "1", Text: "Walk dog", Notes: "leash\npoop bags\n"},
			},
			want: "[ ] 1  Walk dog\n" +
				"    leash\n" +
				"    poop bags\n" +
				"\n" +
				"0 of 1 completed\n",
		},
		{
			name: "whitespace-only notes omitted",
			items: []todo.Item{
				{ID: "1", Text: "a", Notes: "  "},
			},
			want: "[ ] 1  a\n\n0 of 1 completed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intent.FormatList(tt.items))
		})
	}
}
