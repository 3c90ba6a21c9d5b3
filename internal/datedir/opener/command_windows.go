package opener

const defaultCommand = "explorer"
