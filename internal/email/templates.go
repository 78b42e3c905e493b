package email

const welcomeTemplate = `<html><body>
<h2>Welcome, %s!</h2>
<p>Your GoTrabahu account is ready. Browse open jobs and start applying.</p>
</body></html>`

const statusChangedTemplate = `<html><body>
<p>Hi %s,</p>
<p>Your application for <b>%s</b> at %s is now <b>%s</b>.</p>
</body></html>`

const subscriptionApprovedTemplate = `<html><body>
<p>Hi %s,</p>
<p>Your <b>%s</b> subscription has been approved and is now active.</p>
</body></html>`
