package opener

const defaultCommand = "open"
