package ofx

// mccDescriptions maps SIC/MCC codes (ISO 18245) to their combined merchant
// category description. Transactions carrying a recognized <SIC> get the
// description attached as MCC. This is the subset seen on retail statements;
// unknown codes simply leave MCC empty.
var mccDescriptions = map[string]string{
	"0742": "Veterinary Services",
	"0780": "Landscaping and Horticultural Services",
	"1711": "Heating, Plumbing, and Air Conditioning Contractors",
	"1731": "Electrical Contractors",
	"3000": "United Airlines",
	"3351": "Affiliated Auto Rental",
	"3501": "Holiday Inns",
	"4011": "Railroads",
	"4111": "Local and Suburban Commuter Passenger Transportation",
	"4112": "Passenger Railways",
	"4121": "Taxicabs and Limousines",
	"4131": "Bus Lines",
	"4214": "Motor Freight Carriers and Trucking",
	"4411": "Steamship and Cruise Lines",
	"4511": "Airlines and Air Carriers",
	"4582": "Airports, Flying Fields, and Airport Terminals",
	"4722": "Travel Agencies and Tour Operators",
	"4784": "Tolls and Bridge Fees",
	"4789": "Transportation Services (Not Elsewhere Classified)",
	"4812": "Telecommunication Equipment and Telephone Sales",
	"4814": "Telecommunication Services",
	"4816": "Computer Network/Information Services",
	"4821": "Telegraph Services",
	"4899": "Cable, Satellite, and Other Pay Television and Radio Services",
	"4900": "Utilities - Electric, Gas, Water, and Sanitary",
	"5013": "Motor Vehicle Supplies and New Parts",
	"5045": "Computers, Peripherals, and Software",
	"5192": "Books, Periodicals, and Newspapers",
	"5200": "Home Supply Warehouse Stores",
	"5211": "Lumber and Building Materials Stores",
	"5251": "Hardware Stores",
	"5261": "Nurseries and Lawn and Garden Supply Stores",
	"5300": "Wholesale Clubs",
	"5310": "Discount Stores",
	"5311": "Department Stores",
	"5331": "Variety Stores",
	"5411": "Grocery Stores and Supermarkets",
	"5422": "Freezer and Locker Meat Provisioners",
	"5441": "Candy, Nut, and Confectionery Stores",
	"5451": "Dairy Products Stores",
	"5462": "Bakeries",
	"5499": "Miscellaneous Food Stores",
	"5511": "Car and Truck Dealers (New and Used)",
	"5541": "Service Stations",
	"5542": "Automated Fuel Dispensers",
	"5651": "Family Clothing Stores",
	"5661": "Shoe Stores",
	"5691": "Men's and Women's Clothing Stores",
	"5712": "Furniture, Home Furnishings, and Equipment Stores",
	"5732": "Electronics Stores",
	"5734": "Computer Software Stores",
	"5735": "Record Stores",
	"5811": "Caterers",
	"5812": "Eating Places and Restaurants",
	"5813": "Drinking Places (Alcoholic Beverages)",
	"5814": "Fast Food Restaurants",
	"5912": "Drug Stores and Pharmacies",
	"5921": "Package Stores - Beer, Wine, and Liquor",
	"5941": "Sporting Goods Stores",
	"5942": "Book Stores",
	"5943": "Stationery Stores, Office and School Supply Stores",
	"5968": "Direct Marketing - Continuity/Subscription Merchants",
	"5992": "Florists",
	"5994": "News Dealers and Newsstands",
	"5999": "Miscellaneous Specialty Retail",
	"6010": "Financial Institutions - Manual Cash Disbursements",
	"6011": "Financial Institutions - Automated Cash Disbursements",
	"6012": "Financial Institutions - Merchandise and Services",
	"6300": "Insurance Sales, Underwriting, and Premiums",
	"7011": "Lodging - Hotels, Motels, and Resorts",
	"7210": "Laundry, Cleaning, and Garment Services",
	"7230": "Beauty and Barber Shops",
	"7299": "Miscellaneous Personal Services",
	"7372": "Computer Programming, Data Processing, and Integrated Systems Design Services",
	"7399": "Business Services (Not Elsewhere Classified)",
	"7523": "Parking Lots and Garages",
	"7538": "Automotive Service Shops (Non-Dealer)",
	"7542": "Car Washes",
	"7832": "Motion Picture Theaters",
	"7841": "Video Tape Rental Stores",
	"7941": "Commercial Sports, Professional Sports Clubs, and Athletic Fields",
	"7997": "Membership Clubs (Sports, Recreation, Athletic)",
	"8011": "Doctors and Physicians (Not Elsewhere Classified)",
	"8021": "Dentists and Orthodontists",
	"8043": "Opticians, Optical Goods, and Eyeglasses",
	"8062": "Hospitals",
	"8099": "Medical Services and Health Practitioners",
	"8211": "Elementary and Secondary Schools",
	"8220": "Colleges, Universities, Professional Schools, and Junior Colleges",
	"8398": "Charitable and Social Service Organizations",
	"8661": "Religious Organizations",
	"9211": "Court Costs, Including Alimony and Child Support",
	"9222": "Fines",
	"9311": "Tax Payments",
	"9399": "Government Services (Not Elsewhere Classified)",
}
