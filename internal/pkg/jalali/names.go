package jalali

import (
	"fmt"
	"strconv"
	"time"
)

var monthNamesDari = map[int]string{
	1:  "حمل",
	2:  "ثور",
	3:  "جوزا",
	4:  "سرطان",
	5:  "اسد",
	6:  "سنبله",
	7:  "میزان",
	8:  "عقرب",
	9:  "قوس",
	10: "جدی",
	11: "دلو",
	12: "حوت",
}

var weekdayNamesDari = map[time.Weekday]string{
	time.Saturday:  "شنبه",
	time.Sunday:    "یکشنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنج‌شنبه",
	time.Friday:    "جمعه",
}

// MonthName returns the Dari name of Jalali month jm, or the number itself when out of range.
func MonthName(jm int) string {
	if name, ok := monthNamesDari[jm]; ok {
		return name
	}
	return strconv.Itoa(jm)
}

// WeekdayNames returns the Dari and English weekday names of t.
func WeekdayNames(t time.Time) (dari, english string) {
	return weekdayNamesDari[t.Weekday()], t.Weekday().String()
}

// FullLabel renders "weekday day month year" in Dari, e.g. "دوشنبه 15 حوت 1404".
func FullLabel(t time.Time) string {
	jy, jm, jd := FromGregorian(t)
	dari, _ := WeekdayNames(t)
	return fmt.Sprintf("%s %d %s %d", dari, jd, MonthName(jm), jy)
}
