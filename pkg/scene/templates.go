package scene

import "hazard-server/internal/domain"

// Комнаты дома
const (
	RoomDining  = "dining room"
	RoomFoyer   = "foyer"
	RoomKitchen = "kitchen"
	RoomBedroom = "master bedroom"
	RoomOffice  = "office"
)

// --- ОПАСНОСТИ ---

var FrayedCord = ObjectTemplate{
	Name:      "Frayed Lamp Cord",
	Tag:       domain.TagHazard,
	Room:      RoomOffice,
	BaseScore: 60,
	Hint:      "Look closely at the wiring near the desk.",
	Review:    "Damaged insulation exposes live wires and can start a fire or shock someone.",
}

var OverloadedOutlet = ObjectTemplate{
	Name:      "Overloaded Outlet",
	Tag:       domain.TagHazard,
	Room:      RoomOffice,
	BaseScore: 45,
	Hint:      "Count how many plugs share one socket.",
	Review:    "Daisy-chained adapters overheat the circuit.",
}

var CandleByCurtain = ObjectTemplate{
	Name:      "Candle by the Curtains",
	Tag:       domain.TagHazard,
	Room:      RoomDining,
	BaseScore: 35,
	Hint:      "An open flame should have clear space around it.",
	Review:    "Unattended candles near fabric are a leading cause of house fires.",
}

var KnifeOnEdge = ObjectTemplate{
	Name:      "Knife on Counter Edge",
	Tag:       domain.TagHazard,
	Room:      RoomKitchen,
	BaseScore: 40,
	Hint:      "Something sharp is about to fall.",
	Review:    "Knives hanging over the edge can fall or be grabbed by children.",
}

var UnlockedChemicals = ObjectTemplate{
	Name:      "Unlocked Cleaning Chemicals",
	Tag:       domain.TagHazard,
	Room:      RoomKitchen,
	BaseScore: 70,
	Hint:      "Check what is stored under the sink.",
	Review:    "Household chemicals must be locked away from children.",
}

var SpaceHeaterByBed = ObjectTemplate{
	Name:      "Space Heater by the Bed",
	Tag:       domain.TagHazard,
	Room:      RoomBedroom,
	BaseScore: 55,
	Hint:      "Heaters need a meter of clearance.",
	Review:    "Bedding touching a heater can ignite overnight.",
}

var MedsOnNightstand = ObjectTemplate{
	Name:      "Open Pill Bottle",
	Tag:       domain.TagHazard,
	Room:      RoomBedroom,
	BaseScore: 65,
	Hint:      "Medicine left within reach.",
	Review:    "Medications should be closed and stored out of reach.",
}

var ClutteredStairs = ObjectTemplate{
	Name:      "Shoes on the Stairs",
	Tag:       domain.TagHazard,
	Room:      RoomFoyer,
	BaseScore: 30,
	Hint:      "Watch your step on the way up.",
	Review:    "Objects left on stairs are a common trip and fall hazard.",
}

// --- СРЕДСТВА БЕЗОПАСНОСТИ ---

var SmokeDetector = ObjectTemplate{
	Name:      "Smoke Detector",
	Tag:       domain.TagSafety,
	Room:      RoomFoyer,
	BaseScore: 50,
	Hint:      "Look up at the ceiling.",
	Review:    "A working smoke detector on every floor gives early warning of fire.",
}

var FireExtinguisher = ObjectTemplate{
	Name:      "Fire Extinguisher",
	Tag:       domain.TagSafety,
	Room:      RoomKitchen,
	BaseScore: 30,
	Hint:      "Kitchens should have one within reach.",
	Review:    "An extinguisher near the stove stops small fires before they spread.",
}

var CODetector = ObjectTemplate{
	Name:      "Carbon Monoxide Detector",
	Tag:       domain.TagSafety,
	Room:      RoomBedroom,
	BaseScore: 70,
	Hint:      "Some dangers have no smell.",
	Review:    "CO detectors near bedrooms warn of an invisible, odorless gas.",
}

var FirstAidKit = ObjectTemplate{
	Name:      "First Aid Kit",
	Tag:       domain.TagSafety,
	Room:      RoomOffice,
	BaseScore: 40,
	Hint:      "Something you reach for after a small accident.",
	Review:    "A stocked first aid kit handles cuts and burns right away.",
}

var CabinetLock = ObjectTemplate{
	Name:      "Child Cabinet Lock",
	Tag:       domain.TagSafety,
	Room:      RoomKitchen,
	BaseScore: 75,
	Hint:      "Look at the cabinet handles.",
	Review:    "Cabinet locks keep dangerous items away from children.",
}

var NightLight = ObjectTemplate{
	Name:      "Hallway Night Light",
	Tag:       domain.TagSafety,
	Room:      RoomFoyer,
	BaseScore: 60,
	Hint:      "Something small that helps at night.",
	Review:    "Night lights prevent falls when walking in the dark.",
}

var StairGate = ObjectTemplate{
	Name:      "Stair Gate",
	Tag:       domain.TagSafety,
	Room:      RoomFoyer,
	BaseScore: 35,
	Hint:      "What keeps a toddler off the stairs?",
	Review:    "Gates at the top and bottom of stairs prevent falls.",
}

// --- НЕЙТРАЛЬНЫЕ ---

var (
	FruitBowl   = ObjectTemplate{Name: "Fruit Bowl", Tag: domain.TagInnocuous, Room: RoomDining}
	TableVase   = ObjectTemplate{Name: "Flower Vase", Tag: domain.TagInnocuous, Room: RoomDining}
	WallClock   = ObjectTemplate{Name: "Wall Clock", Tag: domain.TagInnocuous, Room: RoomDining}
	CoatRack    = ObjectTemplate{Name: "Coat Rack", Tag: domain.TagInnocuous, Room: RoomFoyer}
	Umbrella    = ObjectTemplate{Name: "Umbrella Stand", Tag: domain.TagInnocuous, Room: RoomFoyer}
	CoffeeMug   = ObjectTemplate{Name: "Coffee Mug", Tag: domain.TagInnocuous, Room: RoomKitchen}
	Cookbook    = ObjectTemplate{Name: "Cookbook", Tag: domain.TagInnocuous, Room: RoomKitchen}
	Pillow      = ObjectTemplate{Name: "Pillow", Tag: domain.TagInnocuous, Room: RoomBedroom}
	PhotoFrame  = ObjectTemplate{Name: "Photo Frame", Tag: domain.TagInnocuous, Room: RoomBedroom}
	Bookshelf   = ObjectTemplate{Name: "Bookshelf", Tag: domain.TagInnocuous, Room: RoomOffice}
	DeskPlant   = ObjectTemplate{Name: "Potted Plant", Tag: domain.TagInnocuous, Room: RoomOffice}
	PaperStack  = ObjectTemplate{Name: "Stack of Papers", Tag: domain.TagInnocuous, Room: RoomOffice}
	KitchenRoll = ObjectTemplate{Name: "Paper Towel Roll", Tag: domain.TagInnocuous, Room: RoomKitchen}
)

// --- ГРУППЫ (один вариант на раунд) ---

var StovePan = GroupTemplate{
	Name: "Stove Pan",
	Room: RoomKitchen,
	Children: []ObjectTemplate{
		{
			Name:      "Pan Handle Sticking Out",
			Tag:       domain.TagHazard,
			BaseScore: 45,
			Hint:      "Check which way the cookware is facing.",
			Review:    "Handles over the edge of the stove are easy to knock over.",
		},
		{
			Name:      "Pan Handle Turned In",
			Tag:       domain.TagSafety,
			BaseScore: 65,
			Hint:      "Check which way the cookware is facing.",
			Review:    "Turning handles inward keeps hot pans out of reach.",
		},
	},
}

var HallRug = GroupTemplate{
	Name: "Hall Rug",
	Room: RoomFoyer,
	Children: []ObjectTemplate{
		{
			Name:      "Curled Rug Edge",
			Tag:       domain.TagHazard,
			BaseScore: 50,
			Hint:      "Look down at the floor covering.",
			Review:    "A curled rug edge is an easy trip hazard.",
		},
		{
			Name:      "Rug with Non-Slip Pad",
			Tag:       domain.TagSafety,
			BaseScore: 80,
			Hint:      "Look down at the floor covering.",
			Review:    "A non-slip pad keeps the rug flat and in place.",
		},
	},
}

var BedroomOutlet = GroupTemplate{
	Name: "Bedroom Outlet",
	Room: RoomBedroom,
	Children: []ObjectTemplate{
		{
			Name:      "Uncovered Outlet",
			Tag:       domain.TagHazard,
			BaseScore: 55,
			Hint:      "Low on the wall, at a toddler's height.",
			Review:    "Open sockets invite little fingers and metal objects.",
		},
		{
			Name:      "Outlet Safety Cover",
			Tag:       domain.TagSafety,
			BaseScore: 70,
			Hint:      "Low on the wall, at a toddler's height.",
			Review:    "Plug covers stop children from reaching live contacts.",
		},
	},
}

// --- ТОЧКИ ПОЯВЛЕНИЯ ---

var houseSpawnPoints = []SpawnPoint{
	{Name: RoomDining, X: 3.0, Y: 2.5, Z: 28.0},
	{Name: RoomFoyer, X: -2.0, Y: 2.5, Z: 28.0},
	{Name: RoomKitchen, X: -1.5, Y: 3.0, Z: -2.5},
	{Name: RoomBedroom, X: 5.0, Y: 7.0, Z: -2.5},
	{Name: RoomOffice, X: -5.0, Y: 7.0, Z: 24.0},
}

// Default возвращает встроенный каталог дома. Каждый вызов - новая копия.
func Default() *Catalog {
	return &Catalog{
		Name: "house",
		Objects: []ObjectTemplate{
			FrayedCord, OverloadedOutlet, CandleByCurtain, KnifeOnEdge,
			UnlockedChemicals, SpaceHeaterByBed, MedsOnNightstand, ClutteredStairs,
			SmokeDetector, FireExtinguisher, CODetector, FirstAidKit,
			CabinetLock, NightLight, StairGate,
			FruitBowl, TableVase, WallClock, CoatRack, Umbrella, CoffeeMug,
			Cookbook, Pillow, PhotoFrame, Bookshelf, DeskPlant, PaperStack, KitchenRoll,
		},
		Groups:      []GroupTemplate{cloneGroup(StovePan), cloneGroup(HallRug), cloneGroup(BedroomOutlet)},
		SpawnPoints: append([]SpawnPoint(nil), houseSpawnPoints...),
	}
}

func cloneGroup(g GroupTemplate) GroupTemplate {
	g.Children = append([]ObjectTemplate(nil), g.Children...)
	return g
}
