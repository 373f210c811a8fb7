package output

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// MsgpackFormatter encodes the run report as MessagePack, for compact machine consumption.
type MsgpackFormatter struct{}

func (m MsgpackFormatter) Name() string { return "msgpack" }

func (m MsgpackFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return msgpack.Marshal(BuildReport(result))
}

// DecodeReport reads a report produced by MsgpackFormatter.
func DecodeReport(data []byte) (*Report, error) {
	var rep Report
	if err := msgpack.Unmarshal(data, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
