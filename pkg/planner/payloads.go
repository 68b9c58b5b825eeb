package planner

// Credentials authenticate an existing account.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordReset struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailChange struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ReNewPassword   string `json:"re_new_password" validate:"required,eqfield=NewPassword"`
}

type NewTask struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	DueDate     Date     `json:"due_date"`
	StartTime   *Clock   `json:"start_time,omitempty"`
	EndTime     *Clock   `json:"end_time,omitempty"`
	Priority    Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	Category    *int     `json:"category,omitempty"`
}

// TaskPatch carries only the fields being changed.
type TaskPatch struct {
	Title     *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Completed *bool     `json:"completed,omitempty"`
	Priority  *Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	DueDate   *Date     `json:"due_date,omitempty"`
}

type NewCategory struct {
	Name string `json:"name" validate:"required,max=100"`
}

type NewFocusItem struct {
	Text string `json:"text" validate:"required,max=200"`
	Date Date   `json:"date"`
}

type FocusItemPatch struct {
	Text      *string `json:"text,omitempty" validate:"omitempty,max=200"`
	Completed *bool   `json:"completed,omitempty"`
}

type NewScheduleEvent struct {
	Title     string `json:"title" validate:"required,max=200"`
	Date      Date   `json:"date"`
	StartTime *Clock `json:"start_time" validate:"required"`
	EndTime   *Clock `json:"end_time,omitempty"`
}

type NoteInput struct {
	Date    Date   `json:"date"`
	Content string `json:"content"`
}

// Bool returns a pointer to b, for patch payloads.
func Bool(b bool) *bool {
	return &b
}
