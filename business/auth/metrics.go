package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OtpIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_otp_issued_total",
			Help: "Number of one-time passcodes issued.",
		},
	)

	OtpVerifiedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_otp_verified_total",
			Help: "OTP verification attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(OtpIssuedTotal, OtpVerifiedTotal)
}
