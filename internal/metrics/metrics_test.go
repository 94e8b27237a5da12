package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCountersAccumulate(t *testing.T) {
	Register()

	httpBefore := testutil.ToFloat64(httpRequests.WithLabelValues("/api/v1/bookings", "201"))
	IncHTTP("/api/v1/bookings", "201")
	assert.Equal(t, httpBefore+1, testutil.ToFloat64(httpRequests.WithLabelValues("/api/v1/bookings", "201")))

	createdBefore := testutil.ToFloat64(bookingsCreated)
	IncBookingCreated()
	assert.Equal(t, createdBefore+1, testutil.ToFloat64(bookingsCreated))

	rejectedBefore := testutil.ToFloat64(bookingRejections.WithLabelValues("conflict"))
	IncBookingRejected("conflict")
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(bookingRejections.WithLabelValues("conflict")))

	transitionsBefore := testutil.ToFloat64(statusTransitions.WithLabelValues("confirmed"))
	IncStatusTransition("confirmed")
	assert.Equal(t, transitionsBefore+1, testutil.ToFloat64(statusTransitions.WithLabelValues("confirmed")))
}
