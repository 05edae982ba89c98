// Package todo parses, validates, and updates task files.
//
// The task file is plain text with one task per line:
//
//	Buy milk|Pending|High
//	Clean desk|Done|Low
//
// Each line has exactly three fields separated by '|': the description, the
// status and the importance.
//
// # Task Status Values
//
//   - "Pending": Task still needs doing (the initial status)
//   - "Done": Task is complete
//
// # Importance Values
//
//   - "High": shown first
//   - "Medium"
//   - "Low": shown last
//
// # Loading
//
// Malformed lines (wrong field count, unknown status or importance) are
// skipped and reported as *LineError values; they never stop the remaining
// lines from loading. A missing file is created empty.
//
// # Saving
//
// The whole file is rewritten on every save. The new contents go to a
// temporary file in the same directory which is then renamed over the
// task file, so an interrupted save leaves the previous file in place.
package todo
