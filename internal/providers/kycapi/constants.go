package kycapi

import "time"

const (
	providerName       = "kycapi"
	defaultBaseURL     = "http://localhost:3000"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	resourceBlockingRules = "blockingRules"
	resourceNotification  = "notification"
	resourcePurposes      = "verificationPurposes"
)
