package main

import "time"

// progressLogInterval throttles progress lines when bars are disabled
const progressLogInterval = 5 * time.Second
