package app

// Logo is printed at the start of a run unless disabled.
const Logo = `
⠀⠀⠀⠀⠀⠀⠀⠀⠀⡀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⣿⣦⡀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⢿⣿⣿⣦⣄⠀⠀⠀⠀⣠⡞⠀⠀⠀⣠⣴⣶⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⠘⣿⡛⢿⣿⣷⣄⢀⣾⠏⣀⣤⣶⣿⢿⣿⡏⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠑⢤⣀⡀⠀⢻⣷⡄⠻⣿⣿⣿⣿⣿⣿⡿⢋⣵⣿⠟⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠉⠛⢷⣿⣿⣿⣤⣼⠿⢿⣿⡟⢁⣴⣾⡿⠋⠀⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⢀⣤⣾⣿⣿⣿⠿⣿⠋⠀⠀⠀⢹⣿⣿⣿⣿⣿⠶⠶⠤⣄⡀⠀⠀
⠀⠀⠀⣠⣾⡿⠿⢛⣋⣉⣤⣤⣽⣷⣤⣤⣶⣟⣁⠉⠛⠿⣿⣷⣦⡀⠀⠀⠀⠀
⠀⠐⠻⠿⠿⠿⠿⠿⠿⠿⣿⣿⣿⣿⠃⢰⣿⣿⣿⣿⣷⣦⣬⣙⣿⣿⣄⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⢀⣼⢿⣿⣿⠀⣿⣿⣿⣿⡉⠉⠉⠛⠻⠿⣿⣿⣦⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⢠⡾⠁⢸⣿⡏⢸⣿⣿⠇⠙⢿⡄⠀⠀⠀⠀⠀⠀⠉⠁⠀
⠀⠀⠀⠀⠀⠀⠀⢀⠏⠀⠀⢸⣿⣧⣿⣿⠏⠀⠀⠈⠻⣆⠀⠀⠀⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠘⣿⣿⡿⠃⠀⠀⠀⠀⠀⠈⠄⠀⠀⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠹⡟⠁⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀
⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠁⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀
`
