package domain

// Status is a user's connectivity state.
type Status string

const (
	StatusOnline  Status = "ONLINE"
	StatusOffline Status = "OFFLINE"
)

// User is identified solely by NickName; at most one record exists per
// nickname. Status only becomes ONLINE through a connect transition.
type User struct {
	NickName string `json:"nickName"`
	FullName string `json:"fullName"`
	Status   Status `json:"status"`
}
