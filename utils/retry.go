package utils

import (
	"time"
)

// Retry menjalankan fn sampai berhasil, maksimum attempts kali, dengan
// backoff yang berlipat dua tiap percobaan. Hanya untuk operasi baca:
// mutasi tidak boleh di-retry otomatis karena berisiko order/line ganda.
func Retry(attempts int, base time.Duration, fn func() error) error {
	var err error
	delay := base
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
