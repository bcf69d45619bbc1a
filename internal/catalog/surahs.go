package catalog

// surahs is indexed by surah number minus one
var surahs = [114]Surah{
	{Number: 1, NameAr: "الفاتحة", NameEn: "Al-Fatihah", AyahCount: 7, RevelationPlace: Makkah, RevelationOrder: 5},
	{Number: 2, NameAr: "البقرة", NameEn: "Al-Baqarah", AyahCount: 286, RevelationPlace: Madinah, RevelationOrder: 87},
	{Number: 3, NameAr: "آل عمران", NameEn: "Aal-i-Imraan", AyahCount: 200, RevelationPlace: Madinah, RevelationOrder: 89},
	{Number: 4, NameAr: "النساء", NameEn: "An-Nisaa", AyahCount: 176, RevelationPlace: Madinah, RevelationOrder: 92},
	{Number: 5, NameAr: "المائدة", NameEn: "Al-Maaida", AyahCount: 120, RevelationPlace: Madinah, RevelationOrder: 112},
	{Number: 6, NameAr: "الأنعام", NameEn: "Al-An'aam", AyahCount: 165, RevelationPlace: Makkah, RevelationOrder: 55},
	{Number: 7, NameAr: "الأعراف", NameEn: "Al-A'raaf", AyahCount: 206, RevelationPlace: Makkah, RevelationOrder: 39},
	{Number: 8, NameAr: "الأنفال", NameEn: "Al-Anfaal", AyahCount: 75, RevelationPlace: Madinah, RevelationOrder: 88},
	{Number: 9, NameAr: "التوبة", NameEn: "At-Tawba", AyahCount: 129, RevelationPlace: Madinah, RevelationOrder: 113},
	{Number: 10, NameAr: "يونس", NameEn: "Yunus", AyahCount: 109, RevelationPlace: Makkah, RevelationOrder: 51},
	{Number: 11, NameAr: "هود", NameEn: "Hud", AyahCount: 123, RevelationPlace: Makkah, RevelationOrder: 52},
	{Number: 12, NameAr: "يوسف", NameEn: "Yusuf", AyahCount: 111, RevelationPlace: Makkah, RevelationOrder: 53},
	{Number: 13, NameAr: "الرعد", NameEn: "Ar-Ra'd", AyahCount: 43, RevelationPlace: Madinah, RevelationOrder: 96},
	{Number: 14, NameAr: "إبراهيم", NameEn: "Ibrahim", AyahCount: 52, RevelationPlace: Makkah, RevelationOrder: 72},
	{Number: 15, NameAr: "الحجر", NameEn: "Al-Hijr", AyahCount: 99, RevelationPlace: Makkah, RevelationOrder: 54},
	{Number: 16, NameAr: "النحل", NameEn: "An-Nahl", AyahCount: 128, RevelationPlace: Makkah, RevelationOrder: 70},
	{Number: 17, NameAr: "الإسراء", NameEn: "Al-Israa", AyahCount: 111, RevelationPlace: Makkah, RevelationOrder: 50},
	{Number: 18, NameAr: "الكهف", NameEn: "Al-Kahf", AyahCount: 110, RevelationPlace: Makkah, RevelationOrder: 69},
	{Number: 19, NameAr: "مريم", NameEn: "Maryam", AyahCount: 98, RevelationPlace: Makkah, RevelationOrder: 44},
	{Number: 20, NameAr: "طه", NameEn: "Taa-Haa", AyahCount: 135, RevelationPlace: Makkah, RevelationOrder: 45},
	{Number: 21, NameAr: "الأنبياء", NameEn: "Al-Anbiyaa", AyahCount: 112, RevelationPlace: Makkah, RevelationOrder: 73},
	{Number: 22, NameAr: "الحج", NameEn: "Al-Hajj", AyahCount: 78, RevelationPlace: Madinah, RevelationOrder: 103},
	{Number: 23, NameAr: "المؤمنون", NameEn: "Al-Muminoon", AyahCount: 118, RevelationPlace: Makkah, RevelationOrder: 74},
	{Number: 24, NameAr: "النور", NameEn: "An-Noor", AyahCount: 64, RevelationPlace: Madinah, RevelationOrder: 102},
	{Number: 25, NameAr: "الفرقان", NameEn: "Al-Furqaan", AyahCount: 77, RevelationPlace: Makkah, RevelationOrder: 42},
	{Number: 26, NameAr: "الشعراء", NameEn: "Ash-Shu'araa", AyahCount: 227, RevelationPlace: Makkah, RevelationOrder: 47},
	{Number: 27, NameAr: "النمل", NameEn: "An-Naml", AyahCount: 93, RevelationPlace: Makkah, RevelationOrder: 48},
	{Number: 28, NameAr: "القصص", NameEn: "Al-Qasas", AyahCount: 88, RevelationPlace: Makkah, RevelationOrder: 49},
	{Number: 29, NameAr: "العنكبوت", NameEn: "Al-Ankaboot", AyahCount: 69, RevelationPlace: Makkah, RevelationOrder: 85},
	{Number: 30, NameAr: "الروم", NameEn: "Ar-Room", AyahCount: 60, RevelationPlace: Makkah, RevelationOrder: 84},
	{Number: 31, NameAr: "لقمان", NameEn: "Luqman", AyahCount: 34, RevelationPlace: Makkah, RevelationOrder: 57},
	{Number: 32, NameAr: "السجدة", NameEn: "As-Sajda", AyahCount: 30, RevelationPlace: Makkah, RevelationOrder: 75},
	{Number: 33, NameAr: "الأحزاب", NameEn: "Al-Ahzaab", AyahCount: 73, RevelationPlace: Madinah, RevelationOrder: 90},
	{Number: 34, NameAr: "سبإ", NameEn: "Saba", AyahCount: 54, RevelationPlace: Makkah, RevelationOrder: 58},
	{Number: 35, NameAr: "فاطر", NameEn: "Faatir", AyahCount: 45, RevelationPlace: Makkah, RevelationOrder: 43},
	{Number: 36, NameAr: "يس", NameEn: "Yaseen", AyahCount: 83, RevelationPlace: Makkah, RevelationOrder: 41},
	{Number: 37, NameAr: "الصافات", NameEn: "As-Saaffaat", AyahCount: 182, RevelationPlace: Makkah, RevelationOrder: 56},
	{Number: 38, NameAr: "ص", NameEn: "Saad", AyahCount: 88, RevelationPlace: Makkah, RevelationOrder: 38},
	{Number: 39, NameAr: "الزمر", NameEn: "Az-Zumar", AyahCount: 75, RevelationPlace: Makkah, RevelationOrder: 59},
	{Number: 40, NameAr: "غافر", NameEn: "Ghafir", AyahCount: 85, RevelationPlace: Makkah, RevelationOrder: 60},
	{Number: 41, NameAr: "فصلت", NameEn: "Fussilat", AyahCount: 54, RevelationPlace: Makkah, RevelationOrder: 61},
	{Number: 42, NameAr: "الشورى", NameEn: "Ash-Shura", AyahCount: 53, RevelationPlace: Makkah, RevelationOrder: 62},
	{Number: 43, NameAr: "الزخرف", NameEn: "Az-Zukhruf", AyahCount: 89, RevelationPlace: Makkah, RevelationOrder: 63},
	{Number: 44, NameAr: "الدخان", NameEn: "Ad-Dukhaan", AyahCount: 59, RevelationPlace: Makkah, RevelationOrder: 64},
	{Number: 45, NameAr: "الجاثية", NameEn: "Al-Jaathiya", AyahCount: 37, RevelationPlace: Makkah, RevelationOrder: 65},
	{Number: 46, NameAr: "الأحقاف", NameEn: "Al-Ahqaf", AyahCount: 35, RevelationPlace: Makkah, RevelationOrder: 66},
	{Number: 47, NameAr: "محمد", NameEn: "Muhammad", AyahCount: 38, RevelationPlace: Madinah, RevelationOrder: 95},
	{Number: 48, NameAr: "الفتح", NameEn: "Al-Fath", AyahCount: 29, RevelationPlace: Madinah, RevelationOrder: 111},
	{Number: 49, NameAr: "الحجرات", NameEn: "Al-Hujuraat", AyahCount: 18, RevelationPlace: Madinah, RevelationOrder: 106},
	{Number: 50, NameAr: "ق", NameEn: "Qaaf", AyahCount: 45, RevelationPlace: Makkah, RevelationOrder: 34},
	{Number: 51, NameAr: "الذاريات", NameEn: "Adh-Dhaariyat", AyahCount: 60, RevelationPlace: Makkah, RevelationOrder: 67},
	{Number: 52, NameAr: "الطور", NameEn: "At-Tur", AyahCount: 49, RevelationPlace: Makkah, RevelationOrder: 76},
	{Number: 53, NameAr: "النجم", NameEn: "An-Najm", AyahCount: 62, RevelationPlace: Makkah, RevelationOrder: 23},
	{Number: 54, NameAr: "القمر", NameEn: "Al-Qamar", AyahCount: 55, RevelationPlace: Makkah, RevelationOrder: 37},
	{Number: 55, NameAr: "الرحمن", NameEn: "Ar-Rahmaan", AyahCount: 78, RevelationPlace: Madinah, RevelationOrder: 97},
	{Number: 56, NameAr: "الواقعة", NameEn: "Al-Waaqia", AyahCount: 96, RevelationPlace: Makkah, RevelationOrder: 46},
	{Number: 57, NameAr: "الحديد", NameEn: "Al-Hadid", AyahCount: 29, RevelationPlace: Madinah, RevelationOrder: 94},
	{Number: 58, NameAr: "المجادلة", NameEn: "Al-Mujaadila", AyahCount: 22, RevelationPlace: Madinah, RevelationOrder: 105},
	{Number: 59, NameAr: "الحشر", NameEn: "Al-Hashr", AyahCount: 24, RevelationPlace: Madinah, RevelationOrder: 101},
	{Number: 60, NameAr: "الممتحنة", NameEn: "Al-Mumtahana", AyahCount: 13, RevelationPlace: Madinah, RevelationOrder: 91},
	{Number: 61, NameAr: "الصف", NameEn: "As-Saff", AyahCount: 14, RevelationPlace: Madinah, RevelationOrder: 109},
	{Number: 62, NameAr: "الجمعة", NameEn: "Al-Jumu'a", AyahCount: 11, RevelationPlace: Madinah, RevelationOrder: 110},
	{Number: 63, NameAr: "المنافقون", NameEn: "Al-Munaafiqoon", AyahCount: 11, RevelationPlace: Madinah, RevelationOrder: 104},
	{Number: 64, NameAr: "التغابن", NameEn: "At-Taghaabun", AyahCount: 18, RevelationPlace: Madinah, RevelationOrder: 108},
	{Number: 65, NameAr: "الطلاق", NameEn: "At-Talaaq", AyahCount: 12, RevelationPlace: Madinah, RevelationOrder: 99},
	{Number: 66, NameAr: "التحريم", NameEn: "At-Tahrim", AyahCount: 12, RevelationPlace: Madinah, RevelationOrder: 107},
	{Number: 67, NameAr: "الملك", NameEn: "Al-Mulk", AyahCount: 30, RevelationPlace: Makkah, RevelationOrder: 77},
	{Number: 68, NameAr: "القلم", NameEn: "Al-Qalam", AyahCount: 52, RevelationPlace: Makkah, RevelationOrder: 2},
	{Number: 69, NameAr: "الحاقة", NameEn: "Al-Haaqqa", AyahCount: 52, RevelationPlace: Makkah, RevelationOrder: 78},
	{Number: 70, NameAr: "المعارج", NameEn: "Al-Ma'aarij", AyahCount: 44, RevelationPlace: Makkah, RevelationOrder: 79},
	{Number: 71, NameAr: "نوح", NameEn: "Nooh", AyahCount: 28, RevelationPlace: Makkah, RevelationOrder: 71},
	{Number: 72, NameAr: "الجن", NameEn: "Al-Jinn", AyahCount: 28, RevelationPlace: Makkah, RevelationOrder: 40},
	{Number: 73, NameAr: "المزمل", NameEn: "Al-Muzzammil", AyahCount: 20, RevelationPlace: Makkah, RevelationOrder: 3},
	{Number: 74, NameAr: "المدثر", NameEn: "Al-Muddaththir", AyahCount: 56, RevelationPlace: Makkah, RevelationOrder: 4},
	{Number: 75, NameAr: "القيامة", NameEn: "Al-Qiyaama", AyahCount: 40, RevelationPlace: Makkah, RevelationOrder: 31},
	{Number: 76, NameAr: "الانسان", NameEn: "Al-Insaan", AyahCount: 31, RevelationPlace: Madinah, RevelationOrder: 98},
	{Number: 77, NameAr: "المرسلات", NameEn: "Al-Mursalaat", AyahCount: 50, RevelationPlace: Makkah, RevelationOrder: 33},
	{Number: 78, NameAr: "النبإ", NameEn: "An-Naba", AyahCount: 40, RevelationPlace: Makkah, RevelationOrder: 80},
	{Number: 79, NameAr: "النازعات", NameEn: "An-Naazi'aat", AyahCount: 46, RevelationPlace: Makkah, RevelationOrder: 81},
	{Number: 80, NameAr: "عبس", NameEn: "Abasa", AyahCount: 42, RevelationPlace: Makkah, RevelationOrder: 24},
	{Number: 81, NameAr: "التكوير", NameEn: "At-Takwir", AyahCount: 29, RevelationPlace: Makkah, RevelationOrder: 7},
	{Number: 82, NameAr: "الإنفطار", NameEn: "Al-Infitaar", AyahCount: 19, RevelationPlace: Makkah, RevelationOrder: 82},
	{Number: 83, NameAr: "المطففين", NameEn: "Al-Mutaffifin", AyahCount: 36, RevelationPlace: Makkah, RevelationOrder: 86},
	{Number: 84, NameAr: "الإنشقاق", NameEn: "Al-Inshiqaaq", AyahCount: 25, RevelationPlace: Makkah, RevelationOrder: 83},
	{Number: 85, NameAr: "البروج", NameEn: "Al-Burooj", AyahCount: 22, RevelationPlace: Makkah, RevelationOrder: 27},
	{Number: 86, NameAr: "الطارق", NameEn: "At-Taariq", AyahCount: 17, RevelationPlace: Makkah, RevelationOrder: 36},
	{Number: 87, NameAr: "الأعلى", NameEn: "Al-A'laa", AyahCount: 19, RevelationPlace: Makkah, RevelationOrder: 8},
	{Number: 88, NameAr: "الغاشية", NameEn: "Al-Ghaashiya", AyahCount: 26, RevelationPlace: Makkah, RevelationOrder: 68},
	{Number: 89, NameAr: "الفجر", NameEn: "Al-Fajr", AyahCount: 30, RevelationPlace: Makkah, RevelationOrder: 10},
	{Number: 90, NameAr: "البلد", NameEn: "Al-Balad", AyahCount: 20, RevelationPlace: Makkah, RevelationOrder: 35},
	{Number: 91, NameAr: "الشمس", NameEn: "Ash-Shams", AyahCount: 15, RevelationPlace: Makkah, RevelationOrder: 26},
	{Number: 92, NameAr: "الليل", NameEn: "Al-Lail", AyahCount: 21, RevelationPlace: Makkah, RevelationOrder: 9},
	{Number: 93, NameAr: "الضحى", NameEn: "Ad-Dhuhaa", AyahCount: 11, RevelationPlace: Makkah, RevelationOrder: 11},
	{Number: 94, NameAr: "الشرح", NameEn: "Ash-Sharh", AyahCount: 8, RevelationPlace: Makkah, RevelationOrder: 12},
	{Number: 95, NameAr: "التين", NameEn: "At-Tin", AyahCount: 8, RevelationPlace: Makkah, RevelationOrder: 28},
	{Number: 96, NameAr: "العلق", NameEn: "Al-Alaq", AyahCount: 19, RevelationPlace: Makkah, RevelationOrder: 1},
	{Number: 97, NameAr: "القدر", NameEn: "Al-Qadr", AyahCount: 5, RevelationPlace: Makkah, RevelationOrder: 25},
	{Number: 98, NameAr: "البينة", NameEn: "Al-Bayyina", AyahCount: 8, RevelationPlace: Madinah, RevelationOrder: 100},
	{Number: 99, NameAr: "الزلزلة", NameEn: "Az-Zalzala", AyahCount: 8, RevelationPlace: Madinah, RevelationOrder: 93},
	{Number: 100, NameAr: "العاديات", NameEn: "Al-Aadiyaat", AyahCount: 11, RevelationPlace: Makkah, RevelationOrder: 14},
	{Number: 101, NameAr: "القارعة", NameEn: "Al-Qaari'a", AyahCount: 11, RevelationPlace: Makkah, RevelationOrder: 30},
	{Number: 102, NameAr: "التكاثر", NameEn: "At-Takaathur", AyahCount: 8, RevelationPlace: Makkah, RevelationOrder: 16},
	{Number: 103, NameAr: "العصر", NameEn: "Al-Asr", AyahCount: 3, RevelationPlace: Makkah, RevelationOrder: 13},
	{Number: 104, NameAr: "الهمزة", NameEn: "Al-Humaza", AyahCount: 9, RevelationPlace: Makkah, RevelationOrder: 32},
	{Number: 105, NameAr: "الفيل", NameEn: "Al-Fil", AyahCount: 5, RevelationPlace: Makkah, RevelationOrder: 19},
	{Number: 106, NameAr: "قريش", NameEn: "Quraish", AyahCount: 4, RevelationPlace: Makkah, RevelationOrder: 29},
	{Number: 107, NameAr: "الماعون", NameEn: "Al-Maa'un", AyahCount: 7, RevelationPlace: Makkah, RevelationOrder: 17},
	{Number: 108, NameAr: "الكوثر", NameEn: "Al-Kawthar", AyahCount: 3, RevelationPlace: Makkah, RevelationOrder: 15},
	{Number: 109, NameAr: "الكافرون", NameEn: "Al-Kaafiroon", AyahCount: 6, RevelationPlace: Makkah, RevelationOrder: 18},
	{Number: 110, NameAr: "النصر", NameEn: "An-Nasr", AyahCount: 3, RevelationPlace: Madinah, RevelationOrder: 114},
	{Number: 111, NameAr: "المسد", NameEn: "Al-Masad", AyahCount: 5, RevelationPlace: Makkah, RevelationOrder: 6},
	{Number: 112, NameAr: "الإخلاص", NameEn: "Al-Ikhlaas", AyahCount: 4, RevelationPlace: Makkah, RevelationOrder: 22},
	{Number: 113, NameAr: "الفلق", NameEn: "Al-Falaq", AyahCount: 5, RevelationPlace: Makkah, RevelationOrder: 20},
	{Number: 114, NameAr: "الناس", NameEn: "An-Naas", AyahCount: 6, RevelationPlace: Makkah, RevelationOrder: 21},
}
