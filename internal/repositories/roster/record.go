package roster

import (
	"encoding/json"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

const (
	errRecordNil       = "roster record cannot be nil"
	errRecordMalformed = "stored roster record is malformed"
)

// Record is the persisted roster. Drawing snapshots are carried inline as
// base64 strings by encoding/json.
type Record struct {
	Plants          []*creature.Entry `json:"plants"`
	SelectedPlantID string            `json:"selectedPlantId"`
}

// Encode serializes a record
func Encode(record *Record) ([]byte, error) {
	if record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}

	out := *record
	if out.Plants == nil {
		out.Plants = []*creature.Entry{}
	}

	data, err := json.Marshal(&out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal roster record")
	}
	return data, nil
}

// Decode parses a stored record. Anything that is not a valid record is
// reported as DataLoss.
func Decode(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, errRecordMalformed)
	}

	for i, p := range record.Plants {
		if p == nil {
			return nil, errors.DataLoss(errRecordMalformed).WithMeta("index", i)
		}
	}
	if record.Plants == nil {
		record.Plants = []*creature.Entry{}
	}

	return &record, nil
}
