package domain

// Post is a feed entry authored by a user.
type Post struct {
	ID        string `json:"id"`
	Author    User   `json:"author"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	IsLiked   bool   `json:"isLiked"`
	Replies   []Post `json:"replies,omitempty"`
}

// Story is an ephemeral image attached to a user, shown in the stories rail.
type Story struct {
	ID       string `json:"id"`
	User     User   `json:"user"`
	ImageURL string `json:"imageUrl"`
	Viewed   bool   `json:"viewed"`
}
