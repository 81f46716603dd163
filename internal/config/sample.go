package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# JIM configuration
version: "1.0"

service:
  # Root of the analysis service
  base_url: "http://localhost:5000"
  # Video submission endpoint (multipart: video, exercise_type)
  submit_path: "/"
  # Live session endpoint (multipart: live_exercise_type)
  live_path: "/live"
  # Prefix joined with the returned video_url
  static_path: "/static/"

upload:
  # One of: regular_deadlift, sumo_deadlift, squat, romanian_deadlift, zercher_squats, front_squat
  default_exercise: ""
  # File picker filter
  extensions: [".mp4", ".avi", ".mov"]
  # 0 waits forever
  timeout: 5m

live:
  default_exercise: ""
  timeout: 30s

output:
  default_format: "text"   # text|json|markdown|csv
  color_mode: "auto"       # auto|always|never
  theme: "default"         # default|high-contrast|minimal
  verbose: false
  log_file: "~/.cache/jim/jim.log"

watch:
  debounce: 2s
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
service:
  base_url: "http://localhost:5000"
output:
  default_format: "text"
`
}
