package traits

// Version is the release of the traits module.
const Version = "0.1.0"
