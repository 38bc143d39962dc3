package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name     string `json:"name"     validate:"required,max=128"`
	Email    string `json:"email"    validate:"required,email,max=128"`
	Password string `json:"password" validate:"required,min=5,max=128"`
}

type userRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"     validate:"required,max=128"`
	Email    string   `json:"email"    validate:"required,email,max=128"`
	Password string   `json:"password" validate:"omitempty,min=5,max=128"`
	Roles    []string `json:"roles"    validate:"dive,role"`
	Enabled  *bool    `json:"enabled"`
}

type restaurantRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,max=128"`
}

type dishRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"  validate:"required,max=128"`
	Date  string `json:"date"  validate:"required,datetime=2006-01-02"`
	Price int64  `json:"price" validate:"required,gt=0"`
}

// --- Response types ---

type userResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Registered string   `json:"registered"`
	Enabled    bool     `json:"enabled"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type restaurantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type dishResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	Price        int64  `json:"price"`
}

type menuResponse struct {
	Restaurant restaurantResponse `json:"restaurant"`
	Dishes     []dishResponse     `json:"dishes"`
}

type voteResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Changed      bool   `json:"changed,omitempty"`
}

type voteResultResponse struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Votes          int64  `json:"votes"`
}

type voteResultsResponse struct {
	Date    string               `json:"date"`
	Results []voteResultResponse `json:"results"`
}
