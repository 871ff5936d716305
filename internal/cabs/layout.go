package cabs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layouts maps record fields to column indexes per report type. The
// offsets were reverse-engineered from sample exports and drift when the
// upstream report layout changes, so they are configuration, not code:
// a YAML file can override any subset of them.
type Layouts struct {
	FunctionRoom    FunctionRoomLayout    `yaml:"function_room"`
	FunctionSummary FunctionSummaryLayout `yaml:"function_summary"`
	TrainingRoom    TrainingRoomLayout    `yaml:"training_room"`
	VisitorList     VisitorListLayout     `yaml:"visitor_list"`
	Catering        CateringLayout        `yaml:"catering"`
}

type FunctionRoomLayout struct {
	Room    int `yaml:"room"`
	Start   int `yaml:"start"`
	End     int `yaml:"end"`
	Covers  int `yaml:"covers"`
	Contact int `yaml:"contact"`
	FuncNo  int `yaml:"func_no"`
	Status  int `yaml:"status"`
	RoomUse int `yaml:"room_use"`
	Purpose int `yaml:"purpose"`
}

type FunctionSummaryLayout struct {
	Date    int `yaml:"date"`
	Room    int `yaml:"room"`
	Start   int `yaml:"start"`
	End     int `yaml:"end"`
	Covers  int `yaml:"covers"`
	Host    int `yaml:"host"`
	Purpose int `yaml:"purpose"`
	FuncNo  int `yaml:"func_no"`
	Session int `yaml:"session"`
	Use     int `yaml:"use"`
}

// Ref and Time are the signal columns used to recognize data rows; the
// booking times themselves are read from Start/End.
type TrainingRoomLayout struct {
	Ref     int `yaml:"ref"`
	Time    int `yaml:"time"`
	Start   int `yaml:"start"`
	End     int `yaml:"end"`
	Covers  int `yaml:"covers"`
	Contact int `yaml:"contact"`
	Purpose int `yaml:"purpose"`
}

type VisitorListLayout struct {
	ArrivalTime   int `yaml:"arrival_time"`
	VisitorName   int `yaml:"visitor_name"`
	HostName      int `yaml:"host_name"`
	ContactNumber int `yaml:"contact_number"`
}

type CateringLayout struct {
	Code        int `yaml:"code"`
	Name        int `yaml:"name"`
	Host        int `yaml:"host"`
	Room        int `yaml:"room"`
	BufferStart int `yaml:"buffer_start"`
	MeetStart   int `yaml:"meet_start"`
	MeetEnd     int `yaml:"meet_end"`
	BufferEnd   int `yaml:"buffer_end"`
	Covers      int `yaml:"covers"`
	Notes       int `yaml:"notes"`
}

// DefaultLayouts returns the column offsets observed in current CABS
// exports.
func DefaultLayouts() Layouts {
	return Layouts{
		FunctionRoom: FunctionRoomLayout{
			Room: 15, Start: 16, End: 17, Covers: 18, Contact: 19,
			FuncNo: 20, Status: 21, RoomUse: 22, Purpose: 23,
		},
		FunctionSummary: FunctionSummaryLayout{
			Date: 16, Room: 17, Start: 18, End: 19, Covers: 20,
			Host: 21, Purpose: 22, FuncNo: 23, Session: 24, Use: 25,
		},
		TrainingRoom: TrainingRoomLayout{
			Ref: 12, Time: 13, Start: 14, End: 15, Covers: 16,
			Contact: 17, Purpose: 18,
		},
		VisitorList: VisitorListLayout{
			ArrivalTime: 9, VisitorName: 10, HostName: 11, ContactNumber: 12,
		},
		Catering: CateringLayout{
			Code: 16, Name: 17, Host: 19, Room: 20, BufferStart: 21,
			MeetStart: 22, MeetEnd: 23, BufferEnd: 24, Covers: 25, Notes: 26,
		},
	}
}

// LoadLayouts returns the defaults overlaid with any offsets present in
// the YAML file at path. An empty path returns the defaults unchanged.
func LoadLayouts(path string) (Layouts, error) {
	layouts := DefaultLayouts()
	if path == "" {
		return layouts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return layouts, fmt.Errorf("read layouts: %w", err)
	}
	if err := yaml.Unmarshal(data, &layouts); err != nil {
		return layouts, fmt.Errorf("parse layouts yaml: %w", err)
	}
	return layouts, nil
}
