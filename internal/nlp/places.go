package nlp

// defaultPlaces is the built-in gazetteer: Indian states, union territories
// and major cities, countries and world cities that often appear in disaster
// reports. Names that are also everyday English words (turkey, puri) are left
// out because matching ignores case; Türkiye stands in for the former.
var defaultPlaces = []string{
	// states and union territories
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "Andaman and Nicobar Islands", "Chandigarh", "Delhi",
	"Jammu and Kashmir", "Kashmir", "Ladakh", "Lakshadweep", "Puducherry",

	// cities
	"Mumbai", "New Delhi", "Bengaluru", "Bangalore", "Hyderabad", "Ahmedabad",
	"Chennai", "Kolkata", "Surat", "Pune", "Jaipur", "Lucknow", "Kanpur",
	"Nagpur", "Indore", "Thane", "Bhopal", "Visakhapatnam", "Patna",
	"Vadodara", "Ghaziabad", "Ludhiana", "Agra", "Nashik", "Ranchi",
	"Meerut", "Rajkot", "Varanasi", "Srinagar", "Amritsar", "Prayagraj",
	"Guwahati", "Kochi", "Thiruvananthapuram", "Kozhikode", "Wayanad",
	"Coimbatore", "Madurai", "Mysuru", "Mangaluru", "Bhubaneswar", "Cuttack",
	"Dehradun", "Shimla", "Manali", "Gangtok", "Shillong", "Imphal",
	"Aizawl", "Agartala", "Kohima", "Itanagar", "Panaji", "Raipur",
	"Jodhpur", "Udaipur", "Vijayawada", "Tirupati", "Nellore", "Warangal",
	"Silchar", "Darjeeling", "Siliguri", "Joshimath", "Kedarnath", "Leh",

	// countries and regions
	"India", "Nepal", "Bangladesh", "Pakistan", "Sri Lanka", "Bhutan",
	"Myanmar", "China", "Afghanistan", "Maldives", "Indonesia", "Japan",
	"Philippines", "Türkiye", "Syria", "Morocco", "Libya", "Ukraine",
	"Russia", "Israel", "Gaza", "United States", "USA", "Canada", "Mexico",
	"Brazil", "United Kingdom", "UK", "France", "Germany", "Italy", "Greece",
	"Australia", "New Zealand", "Thailand", "Vietnam", "Taiwan",
	"South Korea", "Iran", "Iraq", "Egypt", "Kenya", "Haiti", "Chile", "Peru",
	"Spain", "Portugal",

	// world cities
	"Tokyo", "Osaka", "Seoul", "Taipei", "Beijing", "Shanghai", "Hong Kong",
	"Manila", "Jakarta", "Bangkok", "Singapore", "Kathmandu", "Dhaka",
	"Karachi", "Lahore", "Islamabad", "Kabul", "Colombo", "Dubai", "Tehran",
	"Istanbul", "Ankara", "Cairo", "Nairobi", "London", "Paris", "Rome",
	"Athens", "Sydney", "Melbourne", "Auckland", "Los Angeles",
	"San Francisco", "New York", "New Orleans", "Houston", "Miami",
	"Toronto", "Vancouver", "Mexico City", "Rio de Janeiro", "Sao Paulo",
}
