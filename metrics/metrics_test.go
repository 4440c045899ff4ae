package metrics

import "testing"

func TestRecordResult(t *testing.T) {
	// just test that it doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("RecordResult panic'd")
		}
	}()

	RecordResult("passed")
	RecordResult("failed")
	RecordResult("broken")
	RecordResult("skipped")
}

func TestRecordContainerAndAttachment(t *testing.T) {
	RecordContainer()
	RecordAttachment()
}

func TestRecordWriteError(t *testing.T) {
	RecordWriteError("result")
	RecordWriteError("container")
	RecordWriteError("attachment")
}

func TestRecordForceClosedSteps(t *testing.T) {
	RecordForceClosedSteps(0)
	RecordForceClosedSteps(3)
}
