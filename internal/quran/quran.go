// Package quran holds the fixed surah list and picker page arithmetic.
package quran

// PageSize is how many surahs one picker page shows.
const PageSize = 10

var surahs = [...]string{
	"Al-Fatihah", "Al-Baqarah", "Ali 'Imran", "An-Nisa'", "Al-Ma'idah",
	"Al-An'am", "Al-A'raf", "Al-Anfal", "At-Taubah", "Yunus",
	"Hud", "Yusuf", "Ar-Ra'd", "Ibrahim", "Al-Hijr",
	"An-Nahl", "Al-Isra'", "Al-Kahf", "Maryam", "Taha",
	"Al-Anbiya'", "Al-Hajj", "Al-Mu'minun", "An-Nur", "Al-Furqan",
	"Asy-Syu'ara'", "An-Naml", "Al-Qasas", "Al-'Ankabut", "Ar-Rum",
	"Luqman", "As-Sajdah", "Al-Ahzab", "Saba'", "Fatir",
	"Yasin", "As-Saffat", "Sad", "Az-Zumar", "Gafir",
	"Fussilat", "Asy-Syura", "Az-Zukhruf", "Ad-Dukhan", "Al-Jasiyah",
	"Al-Ahqaf", "Muhammad", "Al-Fath", "Al-Hujurat", "Qaf",
	"Az-Zariyat", "At-Tur", "An-Najm", "Al-Qamar", "Ar-Rahman",
	"Al-Waqi'ah", "Al-Hadid", "Al-Mujadalah", "Al-Hasyr", "Al-Mumtahanah",
	"As-Saff", "Al-Jumu'ah", "Al-Munafiqun", "At-Tagabun", "At-Talaq",
	"At-Tahrim", "Al-Mulk", "Al-Qalam", "Al-Haqqah", "Al-Ma'arij",
	"Nuh", "Al-Jinn", "Al-Muzzammil", "Al-Muddassir", "Al-Qiyamah",
	"Al-Insan", "Al-Mursalat", "An-Naba'", "An-Nazi'at", "'Abasa",
	"At-Takwir", "Al-Infitar", "Al-Mutaffifin", "Al-Insyiqaq", "Al-Buruj",
	"At-Tariq", "Al-A'la", "Al-Gasyiyah", "Al-Fajr", "Al-Balad",
	"Asy-Syams", "Al-Lail", "Ad-Duha", "Asy-Syarh", "At-Tin",
	"Al-'Alaq", "Al-Qadr", "Al-Bayyinah", "Az-Zalzalah", "Al-'Adiyat",
	"Al-Qari'ah", "At-Takasur", "Al-'Asr", "Al-Humazah", "Al-Fil",
	"Quraisy", "Al-Ma'un", "Al-Kausar", "Al-Kafirun", "An-Nasr",
	"Al-Lahab", "Al-Ikhlas", "Al-Falaq", "An-Nas",
}

// Count returns the number of surahs (114).
func Count() int { return len(surahs) }

// Name returns the surah name for a 1-based number, or "" out of range.
func Name(n int) string {
	if n < 1 || n > len(surahs) {
		return ""
	}
	return surahs[n-1]
}

// PageCount is the number of picker pages (last one holds 4 surahs).
func PageCount() int {
	return (len(surahs) + PageSize - 1) / PageSize
}

// ClampPage forces page into [0, PageCount-1].
func ClampPage(page int) int {
	if page < 0 {
		return 0
	}
	if max := PageCount() - 1; page > max {
		return max
	}
	return page
}

// PageBounds returns the inclusive 1-based surah range shown on page.
func PageBounds(page int) (lo, hi int) {
	page = ClampPage(page)
	lo = page*PageSize + 1
	hi = lo + PageSize - 1
	if hi > len(surahs) {
		hi = len(surahs)
	}
	return lo, hi
}
