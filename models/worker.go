package models

// ScheduleWindow is one working window of a worker's weekly schedule.
// At most one window exists per weekday.
type ScheduleWindow struct {
	Day       string `bson:"day" json:"day"`             // weekday name, e.g. "Monday"
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM"
}

// WorkerProfile is the directory record for a worker. The booking core reads
// it for existence checks and the weekly schedule only.
type WorkerProfile struct {
	ID           string           `bson:"id" json:"id"`
	User         string           `bson:"user" json:"user"` // owning user id
	Profession   string           `bson:"profession" json:"profession"`
	ProfileImage string           `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Rating       float64          `bson:"rating" json:"rating"`
	WorkSchedule []ScheduleWindow `bson:"workSchedule" json:"workSchedule"`
	IsActive     bool             `bson:"isActive" json:"isActive"`
}
