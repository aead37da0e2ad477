package distribution

// Category is one aisle of the supermarket catalog.
type Category struct {
	Name     string
	Weight   float64
	MinPrice Cents
	MaxPrice Cents
	Products []string
}

// DefaultCatalog returns the built-in product catalog.
func DefaultCatalog() []Category {
	return []Category{
		{"Fruits & Vegetables", 0.15, 50, 1000, []string{
			"Apples", "Bananas", "Oranges", "Strawberries", "Blueberries",
			"Tomatoes", "Carrots", "Lettuce", "Broccoli", "Spinach",
			"Potatoes", "Onions", "Peppers", "Cucumbers", "Avocados",
		}},
		{"Dairy & Eggs", 0.13, 100, 800, []string{
			"Milk", "Eggs", "Butter", "Cheese", "Yogurt",
			"Cream", "Sour Cream", "Cottage Cheese", "Ice Cream", "Cream Cheese",
		}},
		{"Meat & Seafood", 0.12, 500, 3000, []string{
			"Chicken Breast", "Ground Beef", "Steak", "Pork Chops", "Bacon",
			"Salmon", "Tuna", "Shrimp", "Sausages", "Ham",
		}},
		{"Bakery", 0.10, 100, 1500, []string{
			"Bread", "Bagels", "Muffins", "Croissants", "Cakes",
			"Cookies", "Pies", "Donuts", "Baguette", "Rolls",
		}},
		{"Beverages", 0.09, 80, 2000, []string{
			"Water", "Coffee", "Tea", "Soda", "Juice",
			"Beer", "Wine", "Milk", "Energy Drinks", "Sports Drinks",
		}},
		{"Snacks & Candy", 0.08, 50, 800, []string{
			"Chips", "Pretzels", "Crackers", "Popcorn", "Nuts",
			"Chocolate", "Candy", "Granola Bars", "Cookies", "Fruit Snacks",
		}},
		{"Frozen Foods", 0.07, 200, 1500, []string{
			"Pizza", "Ice Cream", "Frozen Vegetables", "Frozen Meals", "Frozen Fruit",
			"Frozen Appetizers", "Frozen Breakfast", "Frozen Desserts", "Frozen Fish", "Frozen Chicken",
		}},
		{"Canned Goods", 0.06, 80, 500, []string{
			"Canned Tuna", "Canned Soup", "Canned Beans", "Canned Vegetables", "Canned Fruit",
			"Canned Tomatoes", "Canned Corn", "Canned Chili", "Canned Meat", "Canned Sauce",
		}},
		{"Dry Goods & Pasta", 0.05, 50, 1000, []string{
			"Pasta", "Rice", "Cereal", "Flour", "Sugar",
			"Beans", "Lentils", "Quinoa", "Oats", "Pancake Mix",
		}},
		{"Condiments & Sauces", 0.04, 100, 800, []string{
			"Ketchup", "Mustard", "Mayonnaise", "Salad Dressing", "Olive Oil",
			"Vinegar", "Soy Sauce", "Hot Sauce", "BBQ Sauce", "Pasta Sauce",
		}},
		{"Breakfast Foods", 0.03, 200, 1000, []string{
			"Cereal", "Oatmeal", "Pancake Mix", "Waffles", "Breakfast Bars",
			"Syrup", "Breakfast Sandwich", "Bagels", "Muffins", "Granola",
		}},
		{"Health & Beauty", 0.03, 300, 5000, []string{
			"Shampoo", "Conditioner", "Soap", "Toothpaste", "Deodorant",
			"Lotion", "Facial Cleanser", "Tissues", "Razors", "Vitamins",
		}},
		{"Cleaning Supplies", 0.03, 200, 2000, []string{
			"Laundry Detergent", "Dish Soap", "All-Purpose Cleaner", "Paper Towels", "Toilet Paper",
			"Sponges", "Garbage Bags", "Window Cleaner", "Bleach", "Disinfectant Wipes",
		}},
		{"Baby Products", 0.01, 500, 3000, []string{
			"Diapers", "Baby Wipes", "Baby Food", "Formula", "Baby Shampoo",
			"Baby Lotion", "Baby Powder", "Baby Oil", "Baby Toys", "Baby Clothes",
		}},
		{"Pet Supplies", 0.01, 200, 4000, []string{
			"Dog Food", "Cat Food", "Pet Treats", "Pet Toys", "Cat Litter",
			"Pet Shampoo", "Pet Beds", "Pet Bowls", "Pet Medication", "Pet Accessories",
		}},
	}
}

// weightedString is a label with a sampling weight.
type weightedString struct {
	Value  string
	Weight float64
}

// emailDomains are the 50 mailbox providers customers register with.
var emailDomains = []weightedString{
	{"gmail.com", 0.25}, {"outlook.com", 0.15}, {"yahoo.com", 0.10},
	{"hotmail.com", 0.08}, {"icloud.com", 0.07}, {"protonmail.com", 0.03},
	{"mail.com", 0.02}, {"aol.com", 0.02}, {"zoho.com", 0.01},
	{"yandex.com", 0.01}, {"gmx.com", 0.01},
	{"comcast.net", 0.01}, {"verizon.net", 0.01}, {"att.net", 0.01},
	{"btinternet.com", 0.005}, {"sky.com", 0.005}, {"virginmedia.com", 0.005},
	{"web.de", 0.005}, {"t-online.de", 0.005}, {"freenet.de", 0.005},
	{"orange.fr", 0.005}, {"free.fr", 0.005}, {"sfr.fr", 0.005},
	{"libero.it", 0.005}, {"tiscali.it", 0.005}, {"virgilio.it", 0.005},
	{"telefonica.es", 0.005}, {"movistar.es", 0.005},
	{"docomo.ne.jp", 0.005}, {"ezweb.ne.jp", 0.005},
	{"qq.com", 0.01}, {"163.com", 0.01}, {"126.com", 0.005},
	{"rediffmail.com", 0.005}, {"indiatimes.com", 0.005},
	{"uol.com.br", 0.005}, {"bol.com.br", 0.005},
	{"mail.ru", 0.01}, {"rambler.ru", 0.005},
	{"rogers.com", 0.005}, {"shaw.ca", 0.005},
	{"bigpond.com", 0.005}, {"optusnet.com.au", 0.005},
	{"telkom.net", 0.003}, {"singnet.com.sg", 0.003}, {"sympatico.ca", 0.003},
	{"naver.com", 0.003}, {"wanadoo.fr", 0.003}, {"bluewin.ch", 0.002},
	{"seznam.cz", 0.002},
}

// birthDateLayouts are the date formats customers type their birth date in.
var birthDateLayouts = []weightedString{
	{"2006-01-02", 0.50},
	{"02/01/2006", 0.25},
	{"01/02/2006", 0.15},
	{"2006/01/02", 0.05},
	{"02-01-2006", 0.05},
}

// quantityWeights[i] is the weight of buying i+1 units.
var quantityWeights = []float64{0.50, 0.25, 0.15, 0.07, 0.03}
