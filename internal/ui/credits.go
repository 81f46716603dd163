package ui

// Developer is a credited author shown on the about screen
type Developer struct {
	Name     string
	Role     string
	GitHub   string
	LinkedIn string
}

// Developers credited in the about screen
var Developers = []Developer{
	{Name: "Aditya Raj", Role: "Full Stack Dev", GitHub: "adistrim", LinkedIn: "adistrim"},
	{Name: "Divya Pratap Singh", Role: "ML Engineer", GitHub: "pratapsdev11", LinkedIn: "divyapratapsingh29"},
}
