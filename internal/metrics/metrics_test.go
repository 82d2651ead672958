// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordSelection verifies outcome labels and that the error path
// skips the latency histogram.
func TestRecordSelection(t *testing.T) {
	scoredBefore := testutil.ToFloat64(SelectionsTotal.WithLabelValues("scored"))
	fallbackBefore := testutil.ToFloat64(SelectionsTotal.WithLabelValues("fallback"))
	errorBefore := testutil.ToFloat64(SelectionsTotal.WithLabelValues("error"))

	RecordSelection(2*time.Millisecond, 20, 8, false, nil)
	RecordSelection(1*time.Millisecond, 20, 0, true, nil)
	RecordSelection(0, 0, 0, false, errors.New("no candidates"))

	if got := testutil.ToFloat64(SelectionsTotal.WithLabelValues("scored")); got != scoredBefore+1 {
		t.Errorf("scored count = %v, want %v", got, scoredBefore+1)
	}
	if got := testutil.ToFloat64(SelectionsTotal.WithLabelValues("fallback")); got != fallbackBefore+1 {
		t.Errorf("fallback count = %v, want %v", got, fallbackBefore+1)
	}
	if got := testutil.ToFloat64(SelectionsTotal.WithLabelValues("error")); got != errorBefore+1 {
		t.Errorf("error count = %v, want %v", got, errorBefore+1)
	}
}

func TestRecordObservation(t *testing.T) {
	correctBefore := testutil.ToFloat64(ObservationsApplied.WithLabelValues("true"))
	incorrectBefore := testutil.ToFloat64(ObservationsApplied.WithLabelValues("false"))
	masteredBefore := testutil.ToFloat64(TopicsMastered)

	RecordObservation(true, 0.5, 0.87, false)
	RecordObservation(false, 0.5, 0.38, false)
	RecordObservation(true, 0.75, 0.91, true)

	if got := testutil.ToFloat64(ObservationsApplied.WithLabelValues("true")); got != correctBefore+2 {
		t.Errorf("correct count = %v, want %v", got, correctBefore+2)
	}
	if got := testutil.ToFloat64(ObservationsApplied.WithLabelValues("false")); got != incorrectBefore+1 {
		t.Errorf("incorrect count = %v, want %v", got, incorrectBefore+1)
	}
	if got := testutil.ToFloat64(TopicsMastered); got != masteredBefore+1 {
		t.Errorf("mastered count = %v, want %v", got, masteredBefore+1)
	}
}

func TestRecordStoreOp(t *testing.T) {
	errorsBefore := testutil.ToFloat64(StoreOpErrors.WithLabelValues("get", "student"))

	RecordStoreOp("get", "student", time.Millisecond, nil)
	if got := testutil.ToFloat64(StoreOpErrors.WithLabelValues("get", "student")); got != errorsBefore {
		t.Errorf("error count changed on success: %v", got)
	}

	RecordStoreOp("get", "student", time.Millisecond, errors.New("not found"))
	if got := testutil.ToFloat64(StoreOpErrors.WithLabelValues("get", "student")); got != errorsBefore+1 {
		t.Errorf("error count = %v, want %v", got, errorsBefore+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))

	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 15*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200")); got != before+1 {
		t.Errorf("request count = %v, want %v", got, before+1)
	}
}

// TestConcurrentRecording exercises record helpers under parallel use.
func TestConcurrentRecording(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				RecordSelection(time.Microsecond, 10, 5, false, nil)
				RecordStoreOp("put", "student", time.Microsecond, nil)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
