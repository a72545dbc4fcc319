package categorizer

import "github.com/dvloznov/pockit/internal/domain"

// categoryKeywords pairs a category with its keyword list. Slice order is the
// canonical category enumeration order, which makes tie-breaks deterministic:
// the first category reaching the top score wins.
type categoryKeywords struct {
	category domain.Category
	keywords []string
}

// expenseKeywords is the static keyword table for expense descriptions.
// Mixed Indonesian/English on purpose: descriptions come in both.
var expenseKeywords = []categoryKeywords{
	{domain.CategoryMakanan, []string{
		"makan", "food", "resto", "restaurant", "cafe", "kopi", "coffee",
		"nasi", "ayam", "burger", "pizza", "bakso", "mie", "soto",
		"warteg", "kantin", "catering", "delivery", "gofood", "grabfood",
		"breakfast", "lunch", "dinner", "sarapan", "makan siang", "makan malam",
		"snack", "cemilan", "jajan", "starbucks", "mcd", "kfc", "pizza hut",
		"indomaret", "alfamart", "supermarket", "pasar", "beli sayur",
		"groceries", "belanja bulanan",
	}},
	{domain.CategoryTransport, []string{
		"transport", "transportasi", "ojek", "gojek", "grab", "uber",
		"taxi", "bus", "angkot", "kereta", "commuter", "mrt", "lrt",
		"bensin", "pertamax", "solar", "bbm", "isi bensin", "spbu",
		"parkir", "tol", "e-toll", "e toll", "parking",
		"service motor", "service mobil", "cuci motor", "cuci mobil",
		"bluebird", "travel", "rental",
	}},
	{domain.CategoryKuliah, []string{
		"kuliah", "kampus", "university", "college", "akademik",
		"spp", "ukt", "tuition", "semester", "bayar kuliah",
		"buku", "book", "textbook", "fotocopy", "print", "jilid",
		"tugas", "assignment", "project", "penelitian", "skripsi",
		"thesis", "seminar", "workshop", "kursus", "course",
		"pelatihan", "training", "sertifikasi", "certification",
		"gramedia", "toko buku", "atk", "alat tulis", "pulpen", "pensil",
	}},
	{domain.CategoryHiburan, []string{
		"hiburan", "entertainment", "nonton", "film", "movie", "cinema",
		"bioskop", "cgv", "xxi", "cinepolis",
		"netflix", "spotify", "youtube", "disney", "prime video",
		"subscription", "langganan", "streaming",
		"game", "gaming", "steam", "playstation", "xbox", "nintendo",
		"concert", "konser", "festival", "event", "tiket",
		"karaoke", "ktv", "billiard", "bowling", "arcade",
		"gym", "fitness", "olahraga", "sport", "futsal", "badminton",
		"traveling", "vacation", "liburan", "hotel", "hostel", "airbnb",
	}},
	{domain.CategoryKebutuhan, []string{
		"kebutuhan", "needs", "keperluan",
		"sabun", "shampoo", "pasta gigi", "sikat gigi", "deodorant",
		"skincare", "facial", "moisturizer", "sunscreen", "toner",
		"makeup", "kosmetik", "lipstik", "foundation", "bedak",
		"baju", "celana", "kaos", "kemeja", "dress", "sepatu", "sandal",
		"fashion", "clothing", "uniqlo", "h&m", "zara", "online shop",
		"tokopedia", "shopee", "lazada", "bukalapak", "blibli",
		"laundry", "cuci baju", "setrika",
		"potong rambut", "barber", "salon", "haircut",
		"obat", "medicine", "vitamin", "apotek", "pharmacy", "dokter", "doctor",
		"listrik", "pln", "token listrik", "air", "pdam", "wifi", "internet",
		"pulsa", "paket data", "top up",
	}},
	{domain.CategoryLainnya, []string{
		"lain", "other", "misc", "miscellaneous", "transfer", "kiriman",
		"hadiah", "gift", "kado", "donasi", "donation", "zakat", "infaq",
		"asuransi", "insurance", "investasi", "investment", "tabungan", "saving",
	}},
}

// incomeKeywords is the static keyword table for income descriptions.
var incomeKeywords = []categoryKeywords{
	{domain.CategoryUangSaku, []string{
		"uang saku", "jajan", "dari ortu", "dari orang tua", "bulanan",
		"mingguan", "transfer ortu", "kiriman",
	}},
	{domain.CategoryKerjaSampingan, []string{
		"freelance", "project", "gaji", "salary", "payment", "bayaran",
		"honor", "fee", "kerja", "part time", "parttime", "sampingan",
		"upwork", "fiverr", "design", "coding", "ngoding", "programming",
		"tutor", "les", "mengajar", "commission", "komisi", "bonus",
	}},
	{domain.CategoryBeasiswa, []string{
		"beasiswa", "scholarship", "grant", "bantuan", "stipend",
		"penelitian", "research", "mahasiswa berprestasi",
	}},
	{domain.CategoryLainnya, []string{
		"hadiah", "gift", "menang", "lottery", "undian", "reward",
		"cashback", "refund", "reimbursement",
	}},
}
