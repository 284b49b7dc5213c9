package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTask() *Task {
	return &Task{
		Persona:     "Travel Planner",
		JobToBeDone: "Plan a trip of 4 days for a group of 10 college friends.",
		Documents:   []DocumentRef{{Filename: "a.pdf"}, {Filename: "b.pdf"}},
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr string
	}{
		{"valid task", func(*Task) {}, ""},
		{"empty persona", func(t *Task) { t.Persona = "" }, "persona.role"},
		{"blank persona", func(t *Task) { t.Persona = "   " }, "persona.role"},
		{"empty job", func(t *Task) { t.JobToBeDone = "" }, "job_to_be_done.task"},
		{"no documents", func(t *Task) { t.Documents = nil }, "no documents"},
		{"empty filename", func(t *Task) { t.Documents[1].Filename = "" }, "documents[1]"},
		{"subdirectory filename", func(t *Task) { t.Documents[0].Filename = "day1/a.pdf" }, ""},
		{"parent escape", func(t *Task) { t.Documents[0].Filename = "../secret.pdf" }, "inside the input directory"},
		{"nested escape", func(t *Task) { t.Documents[1].Filename = "day1/../../b.pdf" }, "documents[1]"},
		{"absolute filename", func(t *Task) { t.Documents[0].Filename = "/etc/passwd" }, "inside the input directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(task)

			err := task.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTask_Validate_Nil(t *testing.T) {
	var task *Task
	assert.ErrorIs(t, task.Validate(), ErrInvalidConfig)
}

func TestTask_Query(t *testing.T) {
	task := validTask()
	assert.Equal(t,
		"Persona: Travel Planner. Task: Plan a trip of 4 days for a group of 10 college friends.",
		task.Query())
}

func TestTask_Filenames(t *testing.T) {
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, validTask().Filenames())
}
