package models

import "fmt"

type Table struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var tables = map[string]string{
	"1": "Table 1",
	"2": "Table 2",
	"3": "Table 3",
	"4": "Table 4",
	"5": "Table 5",
}

// TableName maps a QR table id to its display name. Unknown ids fall back to
// "Table <id>" so a new sticker works before anyone updates the map.
func TableName(id string) string {
	if name, ok := tables[id]; ok {
		return name
	}
	return fmt.Sprintf("Table %s", id)
}
