package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for mutations that return no resource.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the public view of an account. The password hash is not
// representable here at all.
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type verifyResponse struct {
	User userResponse `json:"user"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
	Category    string `json:"category"    validate:"required"`
	DueDate     string `json:"dueDate"`
	DueTime     string `json:"dueTime"`
}

// updateTaskRequest is a partial update: absent fields stay untouched, so
// every field is a pointer to distinguish "not sent" from a zero value.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"   validate:"omitempty,oneof=low medium high"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
	DueTime     *string `json:"dueTime"`
}

// taskResponse mirrors the client's Task shape (camelCase keys, RFC 3339
// timestamps).
type taskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	DueDate     string    `json:"dueDate,omitempty"`
	DueTime     string    `json:"dueTime,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type singleTaskResponse struct {
	Task taskResponse `json:"task"`
}

type listTasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
}
