package dto

// MasterRow is the flat display/export shape of an assignment, the one
// external contract preserved byte-for-byte for spreadsheet interop.
type MasterRow struct {
	ClassCode   string `json:"class_code"`
	TeacherName string `json:"teacher_name"`
	RoomName    string `json:"room_name"`
	Campus      string `json:"campus"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// MasterRowInput is one replacement row in a bulk schedule overwrite,
// naming teacher and room by display name.
type MasterRowInput struct {
	ClassCode   string `json:"classCode"`
	TeacherName string `json:"teacherName"`
	RoomName    string `json:"roomName"`
	Start       string `json:"start" validate:"required"`
	End         string `json:"end" validate:"required"`
}

// ReplaceScheduleRequest carries the full replacement set for the trusted
// bulk overwrite.
type ReplaceScheduleRequest struct {
	Rows []MasterRowInput `json:"rows" validate:"dive"`
}

// ReplaceScheduleResult reports how many rows were saved and how many were
// dropped because a name failed to resolve.
type ReplaceScheduleResult struct {
	Saved   int `json:"saved"`
	Dropped int `json:"dropped"`
}
