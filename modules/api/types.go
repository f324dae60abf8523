package api

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Message  string              `json:"message"`
	Status   int                 `json:"status"`
	Data     any                 `json:"data,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Error    string              `json:"error,omitempty"`
	Token    string              `json:"token,omitempty"`
	NewToken string              `json:"new_token,omitempty"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=5,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5"`
}

// StoreCategoryRequest represents a category creation request. Ownership
// is never taken from the body.
type StoreCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateCategoryRequest represents a partial category update request.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// StoreTaskRequest represents a task creation request. Status is not
// accepted: new tasks always start pending.
type StoreTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	DueDate     string `json:"due_date" validate:"omitempty"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskRequest represents a partial task update request.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	DueDate     *string `json:"due_date" validate:"omitempty"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
}
