package activitylog

import (
	"encoding/json"
	"fmt"
	"time"
)

type Action string

const (
	ActionCreateSession  Action = "CREATE_SESSION"
	ActionUpdateSession  Action = "UPDATE_SESSION"
	ActionDeleteSession  Action = "DELETE_SESSION"
	ActionSetStatus      Action = "SET_STATUS"
	ActionOverwrite      Action = "OVERWRITE_ATTENDANCE"
	ActionCreateEmployee Action = "CREATE_EMPLOYEE"
	ActionUpdateEmployee Action = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee Action = "DELETE_EMPLOYEE"
	ActionExport         Action = "EXPORT"
)

// Meta is the free-form JSON payload of a log entry. Keys used by the
// summaries: date, status, count, what, name, total, old, new.
type Meta map[string]any

// Log is one append-only record of an admin action.
type Log struct {
	ID       int64
	At       time.Time
	ActorID  *string
	Action   Action
	TargetID *string
	Meta     Meta

	// Join
	ActorName *string
}

// Summary renders a one-line Indonesian description of the action.
func (l Log) Summary() string {
	switch l.Action {
	case ActionCreateSession:
		return "Buat sesi presensi " + l.metaString("date")
	case ActionUpdateSession:
		return "Ubah sesi presensi " + l.metaString("date")
	case ActionDeleteSession:
		return "Hapus sesi presensi " + l.metaString("date")
	case ActionSetStatus:
		return fmt.Sprintf("Set status %s (%s pegawai)", l.metaString("status"), l.metaString("count"))
	case ActionOverwrite:
		return fmt.Sprintf("Simpan ulang presensi (%s pegawai)", l.metaString("total"))
	case ActionCreateEmployee:
		return "Tambah pegawai " + l.metaString("name")
	case ActionUpdateEmployee:
		return "Ubah data pegawai " + l.metaString("name")
	case ActionDeleteEmployee:
		return "Hapus pegawai " + l.metaString("name")
	case ActionExport:
		return "Ekspor " + l.metaString("what")
	}

	if len(l.Meta) == 0 {
		return "-"
	}
	b, err := json.Marshal(l.Meta)
	if err != nil {
		return "-"
	}
	return string(b)
}

func (l Log) metaString(key string) string {
	v, ok := l.Meta[key]
	if !ok || v == nil {
		return "-"
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return "-"
		}
		return val
	case float64:
		// numbers decoded from JSONB arrive as float64
		return fmt.Sprintf("%.0f", val)
	default:
		return fmt.Sprint(val)
	}
}
