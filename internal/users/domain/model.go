package domain

// ChatHistoryProjectName is the reserved project name used to persist a
// conversational session. A user holds at most one project with this
// name; saving it again upserts instead of appending.
const ChatHistoryProjectName = "__chat_history__"

// DefaultCredits is the balance granted to a newly created user.
const DefaultCredits = 10

// Project is a named, timestamped HTML artifact owned by a user. The
// timestamp acts as the project's key within a user's list.
type Project struct {
	Name         string  `json:"name"`
	HTML         string  `json:"html"`
	Timestamp    int64   `json:"timestamp"`
	PublishedURL *string `json:"published_url,omitempty"`
	React        *string `json:"react,omitempty"`
	Suggestions  *string `json:"suggestions,omitempty"`
}

type User struct {
	ID       string    `json:"id"`
	Credits  int       `json:"credits"`
	Projects []Project `json:"projects"`
}

// FindProject returns the first project with the given timestamp, or nil.
func (u *User) FindProject(timestamp int64) *Project {
	for i := range u.Projects {
		if u.Projects[i].Timestamp == timestamp {
			return &u.Projects[i]
		}
	}
	return nil
}
