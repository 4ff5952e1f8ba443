package job

// StatusEvents exposes statusEvents to the external test package.
var StatusEvents = statusEvents
