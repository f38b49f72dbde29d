package widgets

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var todoWidget = &widget.Widget{
	Identifier: "show_todo",
	Title:      "Show Todo List",
	Description: `Display an interactive todo list manager with multiple lists.

Use this tool when:
- The user wants to organize tasks or create a todo list
- Managing multiple lists (work, personal, shopping)
- Tracking task completion and due dates

Args:
    title: Main title text (default: "My Tasks")

Returns:
    Todo manager interface with:
    - Multiple collapsible lists
    - Drag-and-drop reordering
    - Task completion checkboxes
    - Due date display
    - Add/edit/delete functionality

Example:
    show_todo(title="Today's Tasks")`,
	TemplateURI: "ui://widget/todo.html",
	Invoking:    "Loading todo list...",
	Invoked:     "Todo list ready",
	Component:   "todo",
}

type todoInput struct {
	Title string `json:"title"`
}

type todoItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	IsComplete bool   `json:"isComplete"`
	Note       string `json:"note,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`
}

type todoList struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	IsCurrentlyOpen bool       `json:"isCurrentlyOpen,omitempty"`
	Todos           []todoItem `json:"todos"`
}

type todoContent struct {
	Lists []todoList `json:"lists"`
}

var sampleTodoLists = []todoList{
	{
		ID:              "work",
		Title:           "Work Tasks",
		IsCurrentlyOpen: true,
		Todos: []todoItem{
			{ID: "1", Title: "Review pull requests", Note: "Check the new feature branch"},
			{ID: "2", Title: "Update documentation", IsComplete: true},
			{ID: "3", Title: "Team standup meeting", DueDate: "2025-01-15"},
		},
	},
	{
		ID:    "personal",
		Title: "Personal",
		Todos: []todoItem{
			{ID: "4", Title: "Buy groceries"},
			{ID: "5", Title: "Call mom", DueDate: "2025-01-14"},
		},
	},
	{
		ID:    "shopping",
		Title: "Shopping List",
		Todos: []todoItem{
			{ID: "6", Title: "Milk"},
			{ID: "7", Title: "Bread", IsComplete: true},
			{ID: "8", Title: "Eggs"},
		},
	},
}

func newTodo(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("TodoInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "My Tasks", Description: "Main title"},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, todoWidget, model, func(_ context.Context, _ todoInput) (*output, error) {
		total := 0
		for _, l := range sampleTodoLists {
			total += len(l.Todos)
		}

		return &output{
			Narration: fmt.Sprintf("Todo: %d lists, %d items", len(sampleTodoLists), total),
			Data:      todoContent{Lists: sampleTodoLists},
		}, nil
	}), nil
}
