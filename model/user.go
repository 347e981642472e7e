package model

// User is the document stored in the "users" collection. Usernames are
// normalized (trimmed, lower-cased) before any read or write.
type User struct {
	Username      string         `bson:"username" json:"username"`
	PasswordHash  []byte         `bson:"password_hash" json:"-"`
	Email         string         `bson:"email,omitempty" json:"email,omitempty"`
	Watched       []int64        `bson:"watched" json:"watched"`
	WatchList     []int64        `bson:"watch_list" json:"watch_list"`
	Notifications []Notification `bson:"notifications" json:"notifications"`
}

// Notification is embedded in a user's notifications array. Clients address
// notifications by position, there is no stable id.
type Notification struct {
	MovieId  int64  `bson:"movie_id" json:"movie_id"`
	Reviewer string `bson:"reviewer" json:"reviewer"`
	Text     string `bson:"text" json:"text"`
	Date     string `bson:"date" json:"date"`
}

type UserCounts struct {
	Watched       int `json:"watched"`
	WatchList     int `json:"watchList"`
	Notifications int `json:"notifications"`
}
