// ABOUTME: Data types exchanged with the Parlor API
// ABOUTME: Shapes match the backend JSON contract consumed by the app

package client

// AuthPayload is returned by sign-in and sign-up. The client persists
// all three fields locally.
type AuthPayload struct {
	IDToken string `json:"idToken"`
	UID     string `json:"uid"`
	Name    string `json:"name"`
}

// Session is one recorded golf round.
type Session struct {
	ID            string      `json:"id,omitempty"`
	UID           string      `json:"uid,omitempty"`
	Username      string      `json:"username,omitempty"`
	CourseName    string      `json:"courseName"`
	Holes         int         `json:"holes"`
	SelectedHoles []int       `json:"selectedHoles,omitempty"`
	Scores        map[int]int `json:"scores"`
	TotalScore    int         `json:"totalScore"`
	Duration      int         `json:"duration"`
	StartTime     string      `json:"startTime"`
	EndTime       string      `json:"endTime"`
	Privacy       string      `json:"privacy"`
	Images        []string    `json:"images,omitempty"`
	Timestamp     string      `json:"timestamp,omitempty"`

	// Social aggregates, present on feed responses.
	LikeCount    int  `json:"likeCount,omitempty"`
	LikedByMe    bool `json:"likedByMe,omitempty"`
	CommentCount int  `json:"commentCount,omitempty"`
}

// Privacy levels for a session.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
	PrivacyPrivate = "private"
)

// LikeStatus is the server's authoritative like state for a session.
type LikeStatus struct {
	Liked bool `json:"liked"`
	Count int  `json:"likeCount"`
}

// Comment is a comment on a session.
type Comment struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// LeagueSummary is a league as listed.
type LeagueSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

// LeagueMember is a member entry in a league detail.
type LeagueMember struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// LeagueDetail is the full league view.
type LeagueDetail struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	MemberCount     int            `json:"memberCount"`
	Members         []LeagueMember `json:"members"`
	WeeklyChallenge string         `json:"weeklyChallenge"`
}

// RankingEntry is one leaderboard row, ordered by ascending average.
type RankingEntry struct {
	Name         string  `json:"name"`
	AverageScore float64 `json:"average_score"`
}

// Profile is a user's aggregate view.
type Profile struct {
	UID          string  `json:"uid"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Handicap     float64 `json:"handicap"`
	TotalRounds  int     `json:"totalRounds"`
	AverageScore float64 `json:"averageScore"`
	FriendsCount int     `json:"friendsCount"`
}

// FriendScore is one entry of the friends' recent scores list.
type FriendScore struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Course    string `json:"course"`
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
}
