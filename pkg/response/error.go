package response

const (
	ServerError = "Server error, try again later"
	//----------------------
	NotLoggedIn        = "Not logged in"
	SessionBlacklisted = "Session has been logged out"
	InvalidSession     = "Invalid session"
	//----------------------
	UserPassNotMatch     = "Invalid username or password"
	UserPassRequired     = "Username and password are required"
	ShortPassword        = "Password must be at least 6 characters"
	InvalidEmail         = "Invalid email address"
	UsernameAlreadyExist = "Username already exists"
	//----------------------
	MovieNotFound   = "Movie not found"
	MovieIdRequired = "Movie ID required"
	//----------------------
	ReviewBodyRequired = "Movie ID and review text required"
	//----------------------
	NotificationIndexRequired = "Notification index required"
	InvalidNotificationIndex  = "Invalid notification index"
	NotificationsNotFound     = "No notifications found"
	//----------------------
	BadRequestBody = "Incorrect request body"
	//----------------------
	WatchlistFetchFailed     = "Failed to fetch watchlist"
	WatchedFetchFailed       = "Failed to fetch watched movies"
	NotificationsFetchFailed = "Failed to fetch notifications"
	WatchlistAddFailed       = "Failed to add to watchlist"
	WatchedAddFailed         = "Failed to add to watched"
	ReviewSubmitFailed       = "Failed to submit review"
	NotificationSeenFailed   = "Failed to mark notification as seen"
)
