package utils

// REVISION is surfaced in every API response envelope so client builds
// can be correlated with backend deploys.
const REVISION = "1.4.2"
