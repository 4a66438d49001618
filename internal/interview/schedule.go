package interview

// Schedule is the fixed difficulty ladder. One slot is consumed per main
// question; follow-ups ride on the current slot.
var Schedule = []string{
	"Easy", "Easy",
	"Medium", "Medium", "Medium", "Medium",
	"Hard", "Hard", "Hard", "Hard",
}

// DifficultyAt returns the difficulty label for a schedule cursor, clamping
// out-of-range values to the nearest slot.
func DifficultyAt(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(Schedule) {
		index = len(Schedule) - 1
	}
	return Schedule[index]
}

// ScheduleComplete reports whether the cursor has consumed every slot.
func ScheduleComplete(index int) bool {
	return index >= len(Schedule)
}
