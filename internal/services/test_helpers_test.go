package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

type keyValueStoreStub struct {
	values       map[string]string
	getErrByKey  map[string]error
	setErrByKey  map[string]error
	removeErr    error
	setCalls     int
	removedCalls [][]string
}

func newKeyValueStoreStub() *keyValueStoreStub {
	return &keyValueStoreStub{
		values:      make(map[string]string),
		getErrByKey: make(map[string]error),
		setErrByKey: make(map[string]error),
	}
}

func (stub *keyValueStoreStub) Get(key string) (string, bool, error) {
	if err := stub.getErrByKey[key]; err != nil {
		return "", false, err
	}
	value, ok := stub.values[key]
	return value, ok, nil
}

func (stub *keyValueStoreStub) Set(key string, value string) error {
	if err := stub.setErrByKey[key]; err != nil {
		return err
	}
	stub.setCalls++
	stub.values[key] = value
	return nil
}

func (stub *keyValueStoreStub) RemoveAll(keys ...string) error {
	if stub.removeErr != nil {
		return stub.removeErr
	}
	removed := append([]string{}, keys...)
	sort.Strings(removed)
	stub.removedCalls = append(stub.removedCalls, removed)
	for _, key := range keys {
		delete(stub.values, key)
	}
	return nil
}

var errStoreUnavailable = errors.New("store unavailable")

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func closedLog(t *testing.T, start string, end string) models.PeriodLog {
	t.Helper()
	endDate := mustParseDay(t, end)
	return models.PeriodLog{
		StartDate: mustParseDay(t, start),
		EndDate:   &endDate,
		Flow:      models.FlowMedium,
		Symptoms:  []string{},
	}
}

func openLog(t *testing.T, start string) models.PeriodLog {
	t.Helper()
	return models.PeriodLog{
		StartDate: mustParseDay(t, start),
		Flow:      models.FlowMedium,
		Symptoms:  []string{},
	}
}

func cycleDataWith(logs ...models.PeriodLog) models.CycleData {
	data := models.NewCycleData()
	data.PeriodLogs = append(data.PeriodLogs, logs...)
	return RecomputeAverages(data)
}

func intValue(t *testing.T, label string, value *int) int {
	t.Helper()
	if value == nil {
		t.Fatalf("expected %s to be set", label)
	}
	return *value
}
